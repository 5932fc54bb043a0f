package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	// ErrRefreshTokenReused marks a refresh token that is cryptographically
	// valid but no longer matches the stored one: it was already rotated or
	// revoked. Only one refresh token per user is ever active.
	ErrRefreshTokenReused = errors.New("refresh token was already used or revoked")
)
