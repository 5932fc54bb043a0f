package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/vidtube/vidtube/models"
)

const (
	createUser = `INSERT INTO users (username, email, full_name, password_hash, avatar_url, cover_image_url)
    VALUES ($1, $2, $3, $4, $5, $6)
    RETURNING user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, COALESCE(refresh_token, ''), created_at, updated_at;`

	findUserByID = `SELECT user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, COALESCE(refresh_token, ''), created_at, updated_at
    FROM users
    WHERE user_id = $1;`

	findUserByUsername = `SELECT user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, COALESCE(refresh_token, ''), created_at, updated_at
    FROM users
    WHERE username = $1;`

	setRefreshToken = `UPDATE users
    SET refresh_token = $2, updated_at = NOW()
    WHERE user_id = $1;`

	// rotateRefreshToken is a compare-and-swap: the stored token must equal
	// the presented one, otherwise no row matches and the rotation fails.
	rotateRefreshToken = `UPDATE users
    SET refresh_token = $3, updated_at = NOW()
    WHERE user_id = $1 AND refresh_token = $2;`

	clearRefreshToken = `UPDATE users
    SET refresh_token = NULL, updated_at = NOW()
    WHERE user_id = $1;`

	channelStats = `SELECT
    (SELECT COUNT(*) FROM subscriptions WHERE channel_id = $1) AS subscribers,
    (SELECT COUNT(*) FROM subscriptions WHERE subscriber_id = $1) AS subscribed_to,
    EXISTS (SELECT 1 FROM subscriptions WHERE channel_id = $1 AND subscriber_id = $2) AS is_subscribed;`

	getWatchHistory = `SELECT v.video_id, v.owner_id, v.title, v.thumbnail_url, v.duration_seconds, v.created_at,
        u.username, u.full_name, u.avatar_url,
        wh.watched_at
    FROM watch_history wh
    JOIN videos v ON v.video_id = wh.video_id
    JOIN users u ON u.user_id = v.owner_id
    WHERE wh.user_id = $1
    ORDER BY wh.position;`
)

// userColumns is the canonical column list scanned into a [models.User].
// COALESCE keeps the nullable refresh_token scannable into a plain string.
var userColumns = []string{
	"user_id",
	"username",
	"email",
	"full_name",
	"password_hash",
	"avatar_url",
	"cover_image_url",
	"COALESCE(refresh_token, '')",
	"created_at",
	"updated_at",
}

// buildFindUserByLoginQuery builds a SELECT matching a user by username OR
// email. Either value may be empty; the other still matches thanks to the
// uniqueness constraints on both columns.
func buildFindUserByLoginQuery(_ context.Context, username, email string) (string, []any, error) {
	return sq.Select(userColumns...).
		From("users").
		Where(sq.Or{
			sq.Eq{"username": username},
			sq.Eq{"email": email},
		}).
		Limit(1).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}

// buildUpdateUserQuery dynamically builds an UPDATE for the non-nil fields of
// update. updated_at is always touched; the RETURNING clause hands back the
// full post-write record so callers need no second round trip.
func buildUpdateUserQuery(_ context.Context, update models.UserUpdate) (string, []any, error) {
	builder := sq.Update("users").
		Set("updated_at", sq.Expr("NOW()"))

	if update.FullName != nil {
		builder = builder.Set("full_name", *update.FullName)
	}
	if update.Email != nil {
		builder = builder.Set("email", *update.Email)
	}
	if update.AvatarURL != nil {
		builder = builder.Set("avatar_url", *update.AvatarURL)
	}
	if update.CoverImageURL != nil {
		builder = builder.Set("cover_image_url", *update.CoverImageURL)
	}
	if update.PasswordHash != nil {
		builder = builder.Set("password_hash", *update.PasswordHash)
	}

	return builder.
		Where(sq.Eq{"user_id": update.UserID}).
		Suffix(`RETURNING user_id, username, email, full_name, password_hash, avatar_url, cover_image_url, COALESCE(refresh_token, ''), created_at, updated_at`).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
