package store

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock -exclude_interfaces=ErrorClassificator

import (
	"context"

	"github.com/vidtube/vidtube/models"
)

// UserRepository is the data-access contract for user account records.
type UserRepository interface {
	// CreateUser persists a new user and returns the stored record with
	// server-assigned fields populated.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByID retrieves a user by internal identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// FindUserByLogin retrieves the first user whose username or email
	// matches one of the given values.
	FindUserByLogin(ctx context.Context, username, email string) (models.User, error)

	// FindUserByUsername retrieves a user by exact username.
	FindUserByUsername(ctx context.Context, username string) (models.User, error)

	// SetRefreshToken unconditionally replaces the stored refresh token.
	SetRefreshToken(ctx context.Context, userID int64, token string) error

	// RotateRefreshToken atomically replaces the stored refresh token only
	// when its current value equals oldToken. Returns
	// [ErrRefreshTokenMismatch] when the compare-and-swap matches no row.
	RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error

	// ClearRefreshToken removes the stored refresh token.
	ClearRefreshToken(ctx context.Context, userID int64) error

	// UpdateUser applies a partial update and returns the post-write record.
	UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error)
}

// SubscriptionRepository is the data-access contract for subscription edges.
type SubscriptionRepository interface {
	// ChannelStats aggregates the subscription edges around channelID:
	// inbound subscriber count, outbound subscribed-to count, and whether
	// viewerID is among the subscribers.
	ChannelStats(ctx context.Context, channelID, viewerID int64) (models.ChannelStats, error)
}

// VideoRepository is the data-access contract for videos and watch history.
type VideoRepository interface {
	// GetWatchHistory returns the ordered watch history of a user, each
	// entry joined with the video owner's public profile fields.
	GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error)
}

// ErrorClassificator decides whether a failed database operation is worth
// retrying.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
