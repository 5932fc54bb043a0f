package models

import "time"

// Video is the minimal video record needed to resolve watch-history entries.
type Video struct {
	// VideoID is the internal unique identifier of the video.
	VideoID int64 `json:"id"`

	// OwnerID references the user who published the video.
	OwnerID int64 `json:"-"`

	// Title is the display title of the video.
	Title string `json:"title"`

	// ThumbnailURL is the media-host URL of the video thumbnail.
	ThumbnailURL string `json:"thumbnail"`

	// DurationSeconds is the length of the video in whole seconds.
	DurationSeconds int64 `json:"duration"`

	// CreatedAt is the publication timestamp.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Video model.
func (v Video) TableName() string {
	return "videos"
}

// VideoOwner is the public subset of a user record attached to each
// watch-history entry. Exactly one owner is resolved per video.
type VideoOwner struct {
	Username  string `json:"username"`
	FullName  string `json:"fullname"`
	AvatarURL string `json:"avatar"`
}

// WatchHistoryEntry is a single row of the watch-history read model:
// a referenced video joined with its owner's public profile fields.
type WatchHistoryEntry struct {
	Video Video `json:"video"`

	// Owner holds the public profile of the video's publisher.
	Owner VideoOwner `json:"owner"`

	// WatchedAt is when the user watched the video.
	WatchedAt time.Time `json:"watched_at"`
}
