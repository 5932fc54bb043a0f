package models

// APIResponse is the uniform success envelope returned by every endpoint.
type APIResponse struct {
	// StatusCode mirrors the HTTP status code of the response.
	StatusCode int `json:"statusCode"`

	// Data carries the operation result. May be any JSON-serializable value
	// or an empty object for operations without a result body.
	Data any `json:"data"`

	// Message is a short human-readable description of the outcome.
	Message string `json:"message"`

	// Success is true for every 2xx response.
	Success bool `json:"success"`
}

// APIErrorResponse is the uniform failure envelope returned by every endpoint.
type APIErrorResponse struct {
	// StatusCode mirrors the HTTP status code of the response.
	StatusCode int `json:"statusCode"`

	// Message is a short human-readable description of the failure.
	Message string `json:"message"`

	// Success is always false for failure envelopes.
	Success bool `json:"success"`

	// Errors lists additional detail messages, typically per-field
	// validation problems. May be empty.
	Errors []string `json:"errors"`
}

// NewAPIResponse builds a success envelope for the given payload.
func NewAPIResponse(statusCode int, data any, message string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// NewAPIErrorResponse builds a failure envelope with optional detail messages.
func NewAPIErrorResponse(statusCode int, message string, errs ...string) APIErrorResponse {
	if errs == nil {
		errs = []string{}
	}
	return APIErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Success:    false,
		Errors:     errs,
	}
}
