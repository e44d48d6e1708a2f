package middleware

import (
	"net/http"
	"slices"
)

type CorsConfig struct {
	AllowedOrigins   []string
	AllowCredentials bool
}

// Cors answers preflight requests and decorates responses with CORS headers.
// A "*" entry allows any origin; with credentials enabled the request origin
// is echoed back instead of "*".
func Cors(cfg CorsConfig) func(http.Handler) http.Handler {
	wildcard := slices.Contains(cfg.AllowedOrigins, "*")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			allowed := wildcard || slices.Contains(cfg.AllowedOrigins, origin)

			h := w.Header()
			h.Add("Vary", "Origin")
			if allowed {
				if wildcard && (!cfg.AllowCredentials || origin == "") {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
				}
				if cfg.AllowCredentials {
					h.Set("Access-Control-Allow-Credentials", "true")
				}
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				h.Set("Access-Control-Max-Age", "3600")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
