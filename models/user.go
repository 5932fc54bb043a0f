package models

import "time"

// User represents an account entity used for authentication, profile display,
// and channel ownership. Sensitive fields must never be exposed outside
// trusted boundaries.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique handle of the user. Always stored lowercase.
	Username string `json:"username"`

	// Email is the unique e-mail address of the user. Always stored lowercase.
	Email string `json:"email"`

	// FullName is the display name of the user.
	// It is non-sensitive and may be shown in UI.
	FullName string `json:"fullname"`

	// PasswordHash stores the bcrypt digest of the user's password.
	// This value MUST be a derived value, never plaintext.
	// It is never serialized to JSON.
	PasswordHash string `json:"-"`

	// AvatarURL is the media-host URL of the user's avatar. Required.
	AvatarURL string `json:"avatar"`

	// CoverImageURL is the media-host URL of the user's cover image.
	// Empty string when the user has not set one.
	CoverImageURL string `json:"coverImage"`

	// RefreshToken is the single currently valid refresh token for the user,
	// or empty when the user is logged out. Never serialized to JSON.
	RefreshToken string `json:"-"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp of the last modification of the record.
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// UserUpdate describes a partial update of a user record. Nil fields are
// left untouched; non-nil fields replace the stored value. The password
// field carries an already-hashed digest, never plaintext.
type UserUpdate struct {
	UserID        int64
	FullName      *string
	Email         *string
	AvatarURL     *string
	CoverImageURL *string
	PasswordHash  *string
}

// Sanitized returns a copy of the user with credential material removed.
// Handlers return only sanitized records to clients.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	u.RefreshToken = ""
	return u
}
