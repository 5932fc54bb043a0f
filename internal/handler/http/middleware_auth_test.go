package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube/internal/service"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

// stubClaims returns access claims whose subject parses to the given user ID.
func stubClaims(userID string) *models.AccessClaims {
	return &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
}

// nextRecorder is a terminal handler capturing whether it ran and with which
// user ID in context.
type nextRecorder struct {
	called bool
	userID int64
	hasID  bool
}

func (n *nextRecorder) ServeHTTP(_ http.ResponseWriter, r *http.Request) {
	n.called = true
	n.userID, n.hasID = utils.GetUserIDFromContext(r.Context())
}

// TestAuth_CookieAccepted verifies that a valid "accessToken" cookie admits
// the request and stores the user ID in context.
func TestAuth_CookieAccepted(t *testing.T) {
	auth := &mockAuthService{
		parseAccessTokenFn: func(_ context.Context, tokenString string) (*models.AccessClaims, error) {
			assert.Equal(t, "valid.jwt", tokenString)
			return stubClaims("42"), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid.jwt"})
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.True(t, next.called)
	assert.True(t, next.hasID)
	assert.Equal(t, int64(42), next.userID)
}

// TestAuth_BearerAccepted verifies the Authorization header fallback for
// cookie-less API clients.
func TestAuth_BearerAccepted(t *testing.T) {
	auth := &mockAuthService{
		parseAccessTokenFn: func(_ context.Context, tokenString string) (*models.AccessClaims, error) {
			assert.Equal(t, "valid.jwt", tokenString)
			return stubClaims("7"), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer valid.jwt")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.True(t, next.called)
	assert.Equal(t, int64(7), next.userID)
}

// TestAuth_CookiePreferredOverHeader verifies that when both carriers are
// present the cookie wins.
func TestAuth_CookiePreferredOverHeader(t *testing.T) {
	auth := &mockAuthService{
		parseAccessTokenFn: func(_ context.Context, tokenString string) (*models.AccessClaims, error) {
			assert.Equal(t, "cookie.jwt", tokenString)
			return stubClaims("42"), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "cookie.jwt"})
	req.Header.Set("Authorization", "Bearer header.jwt")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	require.True(t, next.called)
}

// TestAuth_NoToken verifies that a request without any credential is rejected
// with 401 before reaching the next handler.
func TestAuth_NoToken(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "unauthorized request")
}

// TestAuth_MalformedAuthorizationHeader verifies that a header without a
// token part is rejected with 401.
func TestAuth_MalformedAuthorizationHeader(t *testing.T) {
	h := newTestHandler(t, &service.Services{AuthService: &mockAuthService{}})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.Header.Set("Authorization", "Bearer")
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// TestAuth_TokenRejected verifies that a token the auth service refuses
// yields 401.
func TestAuth_TokenRejected(t *testing.T) {
	auth := &mockAuthService{
		parseAccessTokenFn: func(_ context.Context, _ string) (*models.AccessClaims, error) {
			return nil, service.ErrTokenIsExpiredOrInvalid
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "expired.jwt"})
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid access token")
}

// TestAuth_UnparsableSubject verifies that claims with a non-numeric subject
// are rejected with 401.
func TestAuth_UnparsableSubject(t *testing.T) {
	auth := &mockAuthService{
		parseAccessTokenFn: func(_ context.Context, _ string) (*models.AccessClaims, error) {
			return stubClaims("not-a-number"), nil
		},
	}
	h := newTestHandler(t, &service.Services{AuthService: auth})

	next := &nextRecorder{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/current-user", nil)
	req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "weird.jwt"})
	rec := httptest.NewRecorder()

	h.auth(next).ServeHTTP(rec, req)

	assert.False(t, next.called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
