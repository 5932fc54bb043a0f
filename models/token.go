package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the claim set carried by a short-lived access token.
//
// In addition to the standard registered claims (sub, iss, iat, exp) it
// embeds the public identity attributes of the user so that authenticated
// handlers can render them without an extra database lookup.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Email is the user's e-mail address at issuance time.
	Email string `json:"email"`

	// Username is the user's unique handle at issuance time.
	Username string `json:"username"`

	// FullName is the user's display name at issuance time.
	FullName string `json:"fullname"`
}

// RefreshClaims is the claim set carried by a longer-lived refresh token.
// It intentionally contains only the registered claims: the subject is the
// user ID, the "jti" makes every issuance unique, and no profile data leaks
// into the long-lived credential.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// UserID extracts the user identifier from the "sub" (subject) claim,
// parses it as a base-10 int64, and returns the result.
//
// Returns an error if the subject claim is missing, empty, or cannot be
// converted to int64.
func (c *AccessClaims) UserID() (int64, error) {
	return subjectUserID(&c.RegisteredClaims)
}

// UserID extracts the user identifier from the "sub" (subject) claim.
// See [AccessClaims.UserID].
func (c *RefreshClaims) UserID() (int64, error) {
	return subjectUserID(&c.RegisteredClaims)
}

func subjectUserID(claims *jwt.RegisteredClaims) (int64, error) {
	subject, err := claims.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(subject, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// TokenPair bundles a freshly issued access/refresh token pair.
// Both values are compact JWS strings, opaque to callers.
type TokenPair struct {
	// AccessToken is the short-lived credential presented on each
	// authenticated request.
	AccessToken string `json:"accessToken"`

	// RefreshToken is the longer-lived credential exchanged for a new pair.
	// Exactly one refresh token is current per user at any time.
	RefreshToken string `json:"refreshToken"`
}
