package store

import (
	"context"
	"fmt"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/models"
)

// videoRepository is the PostgreSQL-backed implementation of
// [VideoRepository]. It reads the "videos" and "watch_history" tables.
type videoRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVideoRepository constructs a [VideoRepository] backed by the provided
// database connection and logger.
func NewVideoRepository(db *DB, logger *logger.Logger) VideoRepository {
	logger.Debug().Msg("creating video repository")
	return &videoRepository{
		db:     db,
		logger: logger,
	}
}

// GetWatchHistory returns the user's watch history ordered by its position
// column. Each entry joins the video record with its owner's public profile
// fields, so the caller gets a fully resolved read model in one query.
//
// A user with no history gets an empty (non-nil) slice.
func (r *videoRepository) GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, getWatchHistory, userID)
	if err != nil {
		log.Err(err).Str("func", "*videoRepository.GetWatchHistory").Int64("user_id", userID).Bool("retryable", r.db.IsRetryable(err)).Msg("error executing watch history query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.WatchHistoryEntry, 0, 20)

	for rows.Next() {
		var entry models.WatchHistoryEntry

		scanErr := rows.Scan(
			&entry.Video.VideoID,
			&entry.Video.OwnerID,
			&entry.Video.Title,
			&entry.Video.ThumbnailURL,
			&entry.Video.DurationSeconds,
			&entry.Video.CreatedAt,
			&entry.Owner.Username,
			&entry.Owner.FullName,
			&entry.Owner.AvatarURL,
			&entry.WatchedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "*videoRepository.GetWatchHistory").Int64("user_id", userID).Msg("error scanning watch history row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*videoRepository.GetWatchHistory").Int64("user_id", userID).Msg("error iterating watch history rows")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return entries, nil
}
