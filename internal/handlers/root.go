package handlers

import "net/http"

// RootHandler answers the liveness ping the editor sends to "/".
func RootHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, r, http.StatusNotFound, "Not Found")
		return
	}

	if r.Method != http.MethodGet {
		writeError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	_ = writeJSON(w, r, http.StatusOK, map[string]string{"Ping": "Pong"})
}
