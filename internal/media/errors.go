package media

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Sentinel errors for media host failures. Callers match with [errors.Is]
// and decide how the failure surfaces to the client.
var (
	// ErrUnauthorized is returned when the media host rejects the configured
	// API credentials.
	ErrUnauthorized = errors.New("media host rejected credentials")

	// ErrRejected is returned when the media host refuses the uploaded file
	// itself (bad format, too large, malformed response).
	ErrRejected = errors.New("media host rejected file")

	// ErrUnavailable is returned when the media host cannot be reached or
	// answers with a server-side failure.
	ErrUnavailable = errors.New("media host unavailable")
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}

	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return fmt.Errorf("%w: %s", ErrRejected, body)
	default:
		return fmt.Errorf("%w: http %d: %s", ErrUnavailable, resp.StatusCode(), body)
	}
}
