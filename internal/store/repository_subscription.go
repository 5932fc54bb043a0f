package store

import (
	"context"
	"fmt"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/models"
)

// subscriptionRepository is the PostgreSQL-backed implementation of
// [SubscriptionRepository]. It aggregates edges of the "subscriptions" table.
type subscriptionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSubscriptionRepository constructs a [SubscriptionRepository] backed by
// the provided database connection and logger.
func NewSubscriptionRepository(db *DB, logger *logger.Logger) SubscriptionRepository {
	logger.Debug().Msg("creating subscription repository")
	return &subscriptionRepository{
		db:     db,
		logger: logger,
	}
}

// ChannelStats aggregates the subscription edges around channelID in a single
// round trip: inbound subscriber count, outbound subscribed-to count, and
// whether viewerID is among the subscribers.
//
// An anonymous viewer is passed as viewerID = 0; no subscription edge can
// reference user 0, so IsSubscribed is false.
func (r *subscriptionRepository) ChannelStats(ctx context.Context, channelID, viewerID int64) (models.ChannelStats, error) {
	log := logger.FromContext(ctx)

	var stats models.ChannelStats
	row := r.db.QueryRowContext(ctx, channelStats, channelID, viewerID)

	if err := row.Err(); err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.ChannelStats").Int64("channel_id", channelID).Bool("retryable", r.db.IsRetryable(err)).Msg("error executing channel stats query")
		return models.ChannelStats{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := row.Scan(&stats.SubscriberCount, &stats.SubscribedToCount, &stats.IsSubscribed); err != nil {
		log.Err(err).Str("func", "*subscriptionRepository.ChannelStats").Int64("channel_id", channelID).Msg("error scanning channel stats")
		return models.ChannelStats{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return stats, nil
}
