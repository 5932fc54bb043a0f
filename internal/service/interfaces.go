package service

import (
	"context"

	"github.com/vidtube/vidtube/models"
)

// RegisterInput carries everything needed to create an account: profile
// fields plus locally staged image files awaiting upload to the media host.
type RegisterInput struct {
	FullName string
	Email    string
	Username string
	Password string

	// AvatarPath is the staged avatar file. Required.
	AvatarPath string

	// CoverImagePath is the staged cover image file. Optional; empty string
	// means the account starts without a cover image.
	CoverImagePath string
}

// AccountService manages the account lifecycle: registration, credential
// changes, and profile field or image updates.
type AccountService interface {
	Register(ctx context.Context, input RegisterInput) (models.User, error)
	CurrentUser(ctx context.Context, userID int64) (models.User, error)
	ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error
	UpdateAccount(ctx context.Context, userID int64, fullName, email string) (models.User, error)
	UpdateAvatar(ctx context.Context, userID int64, stagedPath string) (models.User, error)
	UpdateCoverImage(ctx context.Context, userID int64, stagedPath string) (models.User, error)
}

// AuthService handles credential verification and the token-pair lifecycle,
// including the strict single-active-refresh-token rotation.
type AuthService interface {
	// Login verifies credentials by username or email and issues a fresh
	// token pair, superseding any previously stored refresh token.
	Login(ctx context.Context, username, email, password string) (models.User, models.TokenPair, error)

	// RefreshTokens validates rawRefreshToken and atomically rotates it for
	// a new pair. A stale or already-rotated token yields
	// [ErrTokenIsExpiredOrInvalid].
	RefreshTokens(ctx context.Context, rawRefreshToken string) (models.TokenPair, error)

	// Logout clears the stored refresh token, invalidating all refresh flows.
	Logout(ctx context.Context, userID int64) error

	// ParseAccessToken validates a raw access token and returns its claims.
	ParseAccessToken(ctx context.Context, tokenString string) (*models.AccessClaims, error)
}

// ProfileService serves the read models: channel profile aggregates and
// watch history.
type ProfileService interface {
	GetChannelProfile(ctx context.Context, username string, viewerID int64) (models.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error)
}
