package http

import (
	"net/http"

	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

// respond writes the uniform success envelope with the given payload.
func respond(w http.ResponseWriter, statusCode int, data any, message string) {
	utils.WriteJSON(w, models.NewAPIResponse(statusCode, data, message), statusCode)
}

// respondError writes the uniform failure envelope.
func respondError(w http.ResponseWriter, statusCode int, message string, errs ...string) {
	utils.WriteJSON(w, models.NewAPIErrorResponse(statusCode, message, errs...), statusCode)
}

// respondMappedError resolves the status code from the error chain via
// [statusFromError] and writes a failure envelope. Internal failures are
// masked with the generic status text so storage details never leak.
func respondMappedError(w http.ResponseWriter, err error, message string) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		respondError(w, status, http.StatusText(status))
		return
	}
	respondError(w, status, message)
}
