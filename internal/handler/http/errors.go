// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 VidTube Authors

package http

import "errors"

// Sentinel errors used by the authentication middleware when extracting the
// access token from a request. Callers can match against them with [errors.Is].
var (
	// ErrNoAccessToken is returned when the request carries neither an
	// "accessToken" cookie nor an "Authorization" header.
	ErrNoAccessToken = errors.New("no access token provided")

	// ErrInvalidAuthorizationHeader is returned when the "Authorization"
	// header is present but cannot be split into at least two space-separated
	// parts (i.e. the token value is missing entirely).
	ErrInvalidAuthorizationHeader = errors.New("invalid `Authorization` header")

	// ErrEmptyToken is returned when the token value itself is an empty
	// string, in either the cookie or the header.
	ErrEmptyToken = errors.New("empty access token")

	// ErrNoRefreshToken is returned by the refresh endpoint when the request
	// carries neither a "refreshToken" cookie nor a JSON body token.
	ErrNoRefreshToken = errors.New("no refresh token provided")
)
