package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/models"
)

// profileService is the concrete implementation of [ProfileService]. It
// assembles read models from the user, subscription, and video repositories.
type profileService struct {
	userRepository         store.UserRepository
	subscriptionRepository store.SubscriptionRepository
	videoRepository        store.VideoRepository

	logger *logger.Logger
}

// NewProfileService constructs a [ProfileService] over the three
// repositories it aggregates from.
func NewProfileService(
	userRepository store.UserRepository,
	subscriptionRepository store.SubscriptionRepository,
	videoRepository store.VideoRepository,
	logger *logger.Logger,
) ProfileService {
	return &profileService{
		userRepository:         userRepository,
		subscriptionRepository: subscriptionRepository,
		videoRepository:        videoRepository,
		logger:                 logger,
	}
}

// GetChannelProfile resolves a username to the channel read model: public
// profile fields joined with subscription counts and the viewer's own
// subscription state. viewerID is the authenticated caller; pass 0 for an
// anonymous viewer, who is never subscribed.
//
// Returns:
//   - ErrInvalidDataProvided if username is empty.
//   - A wrapped storage error if the user does not exist
//     ([store.ErrNoUserWasFound]) or the aggregation fails.
func (p *profileService) GetChannelProfile(ctx context.Context, username string, viewerID int64) (models.ChannelProfile, error) {
	log := logger.FromContext(ctx)

	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return models.ChannelProfile{}, ErrInvalidDataProvided
	}

	channel, err := p.userRepository.FindUserByUsername(ctx, username)
	if err != nil {
		log.Err(err).Str("username", username).Msg("channel lookup failed")
		return models.ChannelProfile{}, fmt.Errorf("channel lookup failed: %w", err)
	}

	stats, err := p.subscriptionRepository.ChannelStats(ctx, channel.UserID, viewerID)
	if err != nil {
		log.Err(err).Int64("channel_id", channel.UserID).Msg("channel stats aggregation failed")
		return models.ChannelProfile{}, fmt.Errorf("channel stats aggregation failed: %w", err)
	}

	return models.ChannelProfile{
		UserID:            channel.UserID,
		Username:          channel.Username,
		Email:             channel.Email,
		FullName:          channel.FullName,
		AvatarURL:         channel.AvatarURL,
		CoverImageURL:     channel.CoverImageURL,
		SubscriberCount:   stats.SubscriberCount,
		SubscribedToCount: stats.SubscribedToCount,
		IsSubscribed:      stats.IsSubscribed,
	}, nil
}

// GetWatchHistory returns the user's watch history in position order, each
// entry resolved with the video owner's public profile.
func (p *profileService) GetWatchHistory(ctx context.Context, userID int64) ([]models.WatchHistoryEntry, error) {
	log := logger.FromContext(ctx)

	entries, err := p.videoRepository.GetWatchHistory(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("watch history lookup failed")
		return nil, fmt.Errorf("watch history lookup failed: %w", err)
	}

	return entries, nil
}
