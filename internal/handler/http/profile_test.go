package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube/internal/service"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/models"
)

// ─────────────────────────────────────────────
// Mock ProfileService
// ─────────────────────────────────────────────

// mockProfileService implements service.ProfileService for unit tests.
// Each method field can be overridden per test case.
type mockProfileService struct {
	getChannelProfileFn func(ctx context.Context, username string, viewerID int64) (models.ChannelProfile, error)
	getWatchHistoryFn   func(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error)
}

func (m *mockProfileService) GetChannelProfile(ctx context.Context, username string, viewerID int64) (models.ChannelProfile, error) {
	return m.getChannelProfileFn(ctx, username, viewerID)
}

func (m *mockProfileService) GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error) {
	return m.getWatchHistoryFn(ctx, userID)
}

// channelRequest builds an authenticated GET request for the channel profile
// route with the chi URL parameter populated.
func channelRequest(username string, viewerID int64) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/c/"+username, nil)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)

	ctx := context.WithValue(authedContext(viewerID), chi.RouteCtxKey, rctx)
	return req.WithContext(ctx)
}

// ─────────────────────────────────────────────
// channelProfile
// ─────────────────────────────────────────────

// TestChannelProfile_Success verifies that the aggregated channel profile is
// returned with the viewer-specific subscription flag.
func TestChannelProfile_Success(t *testing.T) {
	profile := &mockProfileService{
		getChannelProfileFn: func(_ context.Context, username string, viewerID int64) (models.ChannelProfile, error) {
			assert.Equal(t, "alice", username)
			assert.Equal(t, int64(7), viewerID)
			return models.ChannelProfile{
				UserID:            42,
				Username:          "alice",
				FullName:          "Alice Smith",
				SubscriberCount:   128,
				SubscribedToCount: 5,
				IsSubscribed:      true,
			}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	rec := httptest.NewRecorder()
	h.channelProfile(rec, channelRequest("alice", 7))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"subscribersCount":128`)
	assert.Contains(t, rec.Body.String(), `"isSubscribed":true`)
}

// TestChannelProfile_NotFound verifies that an unknown channel username maps
// to 404 Not Found.
func TestChannelProfile_NotFound(t *testing.T) {
	profile := &mockProfileService{
		getChannelProfileFn: func(_ context.Context, _ string, _ int64) (models.ChannelProfile, error) {
			return models.ChannelProfile{}, store.ErrNoUserWasFound
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	rec := httptest.NewRecorder()
	h.channelProfile(rec, channelRequest("ghost", 7))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "channel does not exist")
}

// TestChannelProfile_EmptyUsername verifies that a blank username maps to
// 400 Bad Request via service.ErrInvalidDataProvided.
func TestChannelProfile_EmptyUsername(t *testing.T) {
	profile := &mockProfileService{
		getChannelProfileFn: func(_ context.Context, _ string, _ int64) (models.ChannelProfile, error) {
			return models.ChannelProfile{}, service.ErrInvalidDataProvided
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	rec := httptest.NewRecorder()
	h.channelProfile(rec, channelRequest("", 7))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// TestChannelProfile_NoUserInContext verifies that the handler rejects a
// request that bypassed the auth middleware.
func TestChannelProfile_NoUserInContext(t *testing.T) {
	h := newTestHandler(t, &service.Services{ProfileService: &mockProfileService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/c/alice", nil)
	rec := httptest.NewRecorder()

	h.channelProfile(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─────────────────────────────────────────────
// watchHistory
// ─────────────────────────────────────────────

// TestWatchHistory_Success verifies that the watch-history read model is
// returned with the owner profile attached.
func TestWatchHistory_Success(t *testing.T) {
	watchedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	profile := &mockProfileService{
		getWatchHistoryFn: func(_ context.Context, userID int64) ([]models.WatchHistoryEntry, error) {
			assert.Equal(t, int64(42), userID)
			return []models.WatchHistoryEntry{
				{
					Video:     models.Video{VideoID: 1, Title: "Go in an hour"},
					Owner:     models.VideoOwner{Username: "bob", FullName: "Bob Lee"},
					WatchedAt: watchedAt,
				},
			}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil).
		WithContext(authedContext(42))
	rec := httptest.NewRecorder()

	h.watchHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Go in an hour")
	assert.Contains(t, rec.Body.String(), `"username":"bob"`)
}

// TestWatchHistory_Empty verifies that a user without history gets an empty
// array, not null.
func TestWatchHistory_Empty(t *testing.T) {
	profile := &mockProfileService{
		getWatchHistoryFn: func(_ context.Context, _ int64) ([]models.WatchHistoryEntry, error) {
			return []models.WatchHistoryEntry{}, nil
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil).
		WithContext(authedContext(42))
	rec := httptest.NewRecorder()

	h.watchHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

// TestWatchHistory_ServiceError verifies that an unexpected storage failure
// maps to 500 Internal Server Error.
func TestWatchHistory_ServiceError(t *testing.T) {
	profile := &mockProfileService{
		getWatchHistoryFn: func(_ context.Context, _ int64) ([]models.WatchHistoryEntry, error) {
			return nil, errors.New("db connection lost")
		},
	}

	h := newTestHandler(t, &service.Services{ProfileService: profile})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/history", nil).
		WithContext(authedContext(42))
	rec := httptest.NewRecorder()

	h.watchHistory(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
