package http

import "net/http"

// withBodyLimit caps the request body at the configured byte limit. Applied
// per-route to JSON endpoints; multipart upload routes manage their own
// limits through [http.Request.ParseMultipartForm].
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit)
		next.ServeHTTP(w, r)
	})
}
