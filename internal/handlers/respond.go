package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pipelinecheck/core/internal/models"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	encoder := json.NewEncoder(w)
	if r.URL.Query().Get("pretty") == "true" {
		encoder.SetIndent("", "  ")
	}

	return encoder.Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, detail string) {
	_ = writeJSON(w, r, status, models.ErrorResponse{Detail: detail})
}
