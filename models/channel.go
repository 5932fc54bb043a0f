package models

// ChannelProfile is the denormalized read model of a user viewed as a
// channel: public profile fields joined with subscription edge counts and
// the viewer's own subscription state.
type ChannelProfile struct {
	// UserID is the channel owner's internal identifier.
	UserID int64 `json:"id"`

	// Username is the channel handle.
	Username string `json:"username"`

	// Email is the channel owner's e-mail address.
	Email string `json:"email"`

	// FullName is the channel owner's display name.
	FullName string `json:"fullname"`

	// AvatarURL and CoverImageURL are the channel's media-host image URLs.
	AvatarURL     string `json:"avatar"`
	CoverImageURL string `json:"coverImage"`

	// SubscriberCount is the number of inbound subscription edges.
	SubscriberCount int64 `json:"subscribersCount"`

	// SubscribedToCount is the number of outbound subscription edges.
	SubscribedToCount int64 `json:"channelsSubscribedToCount"`

	// IsSubscribed reports whether the requesting viewer is among the
	// channel's subscribers.
	IsSubscribed bool `json:"isSubscribed"`
}

// ChannelStats is the aggregate of subscription edges around a single
// channel, as returned by the subscription repository.
type ChannelStats struct {
	SubscriberCount   int64
	SubscribedToCount int64
	IsSubscribed      bool
}

// Subscription is a single edge of the subscription graph: subscriber →
// channel, both referencing users.
type Subscription struct {
	SubscriberID int64 `json:"subscriber_id"`
	ChannelID    int64 `json:"channel_id"`
}

// TableName returns the name of the database table
// associated with the Subscription model.
func (s Subscription) TableName() string {
	return "subscriptions"
}
