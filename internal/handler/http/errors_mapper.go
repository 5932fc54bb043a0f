package http

import (
	"errors"
	"net/http"

	"github.com/vidtube/vidtube/internal/media"
	"github.com/vidtube/vidtube/internal/service"
	"github.com/vidtube/vidtube/internal/store"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:     http.StatusBadRequest,
	service.ErrWrongPassword:           http.StatusUnauthorized,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrRefreshTokenReused:      http.StatusUnauthorized,

	store.ErrUserAlreadyExists:    http.StatusConflict,
	store.ErrNoUserWasFound:       http.StatusNotFound,
	store.ErrRefreshTokenMismatch: http.StatusUnauthorized,
	store.ErrNothingUpdated:       http.StatusNotFound,

	media.ErrUnauthorized: http.StatusBadGateway,
	media.ErrRejected:     http.StatusBadRequest,
	media.ErrUnavailable:  http.StatusBadGateway,

	store.ErrBuildingSQLQuery:   http.StatusInternalServerError,
	store.ErrExecutingQuery:     http.StatusInternalServerError,
	store.ErrExecutingStatement: http.StatusInternalServerError,
	store.ErrScanningRow:        http.StatusInternalServerError,
	store.ErrScanningRows:       http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
