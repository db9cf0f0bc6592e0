package controller

import (
	"net/http"
	"slices"
)

// WithCORS returns a middleware that sets CORS headers for allowed origins and
// short-circuits OPTIONS preflight requests with 204 No Content. An empty
// origins list or one containing "*" allows every origin.
func WithCORS(next http.Handler, origins ...string) http.Handler {
	allowAll := len(origins) == 0 || slices.Contains(origins, "*")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		switch {
		case origin != "" && (allowAll || slices.Contains(origins, origin)):
			// credentials require an explicit origin instead of "*"
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")
		case origin == "" && allowAll:
			w.Header().Set("Access-Control-Allow-Origin", "*")
		default:
			next.ServeHTTP(w, r)

			return
		}

		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Headers",
			"Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Request-Id")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)

			return
		}

		next.ServeHTTP(w, r)
	})
}
