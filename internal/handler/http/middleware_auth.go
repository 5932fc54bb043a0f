package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/utils"
)

// auth guards protected routes. The access token is read from the
// "accessToken" cookie first, then from the "Authorization: Bearer" header,
// so both browser and API clients are served. On success the authenticated
// user ID is stored in the request context under [utils.UserIDCtxKey].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := extractAccessToken(r)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.auth").Msg("no access token in request")
			respondError(w, http.StatusUnauthorized, "unauthorized request")
			return
		}

		claims, err := h.services.AuthService.ParseAccessToken(r.Context(), tokenString)
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.auth").Msg("access token rejected")
			respondError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			log.Warn().Err(err).Str("func", "*Handler.auth").Msg("access token has no usable subject")
			respondError(w, http.StatusUnauthorized, "invalid access token")
			return
		}

		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// extractAccessToken pulls the raw access token out of the request,
// preferring the cookie over the Authorization header.
func extractAccessToken(r *http.Request) (string, error) {
	if cookie, err := r.Cookie(accessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	authorizationHeader := r.Header.Get("Authorization")
	if authorizationHeader == "" {
		return "", ErrNoAccessToken
	}

	tokenString, err := utils.ParseBearerToken(authorizationHeader)
	if err != nil {
		return "", errors.Join(ErrInvalidAuthorizationHeader, err)
	}
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
