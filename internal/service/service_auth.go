package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

// authService is the concrete implementation of [AuthService]. It verifies
// credentials against bcrypt digests and manages the access/refresh JWT pair,
// enforcing that exactly one refresh token per user is active at any time.
type authService struct {
	// userRepository is the data-access layer used to look up users and
	// persist refresh-token state.
	userRepository store.UserRepository

	// accessSecret and refreshSecret sign and verify the two token kinds.
	// They must be distinct so one token can never pass as the other.
	accessSecret  string
	refreshSecret string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// accessDuration and refreshDuration control the two token lifetimes.
	accessDuration  time.Duration
	refreshDuration time.Duration

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs an [AuthService] wired to the given
// UserRepository and populated with security parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAuthService(userRepository store.UserRepository, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		userRepository:  userRepository,
		accessSecret:    cfg.AccessTokenSecret,
		refreshSecret:   cfg.RefreshTokenSecret,
		tokenIssuer:     cfg.TokenIssuer,
		accessDuration:  cfg.AccessTokenDuration,
		refreshDuration: cfg.RefreshTokenDuration,
		logger:          logger,
	}
}

// Login authenticates an existing user by username or email.
//
// At least one of username/email must be non-empty alongside the password.
// On success a fresh token pair is issued and the refresh token is stored,
// unconditionally superseding any earlier one — logging in on a new device
// logs the previous device out of refresh flows.
//
// Returns:
//   - ErrInvalidDataProvided if both identifiers or the password are empty.
//   - A wrapped storage error if the lookup fails (e.g.
//     [store.ErrNoUserWasFound] when no such account exists).
//   - ErrWrongPassword if the password does not match the stored digest.
func (a *authService) Login(ctx context.Context, username, email, password string) (models.User, models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if (username == "" && email == "") || password == "" {
		log.Error().Str("username", username).Str("email", email).Msg("invalid login data provided")
		return models.User{}, models.TokenPair{}, ErrInvalidDataProvided
	}

	foundUser, err := a.userRepository.FindUserByLogin(ctx, username, email)
	if err != nil {
		log.Err(err).Str("username", username).Str("email", email).Msg("user search by login failed")
		return models.User{}, models.TokenPair{}, fmt.Errorf("user search by login failed: %w", err)
	}

	if !utils.CheckPassword(password, foundUser.PasswordHash) {
		log.Warn().Int64("user_id", foundUser.UserID).Str("username", foundUser.Username).Msg("wrong password")
		return models.User{}, models.TokenPair{}, ErrWrongPassword
	}

	pair, err := a.issueTokenPair(foundUser)
	if err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("token pair issuance failed")
		return models.User{}, models.TokenPair{}, err
	}

	if err = a.userRepository.SetRefreshToken(ctx, foundUser.UserID, pair.RefreshToken); err != nil {
		log.Err(err).Int64("user_id", foundUser.UserID).Msg("failed to store refresh token")
		return models.User{}, models.TokenPair{}, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return foundUser, pair, nil
}

// RefreshTokens exchanges a valid refresh token for a new token pair.
//
// The rotation is a compare-and-swap in the store: the presented token must
// equal the stored one, and both are replaced atomically. A token that fails
// the swap was already rotated, revoked by logout, or never issued — all are
// normalised to [ErrTokenIsExpiredOrInvalid] wrapped around
// [ErrRefreshTokenReused], so handlers answer 401 without leaking which case
// occurred.
func (a *authService) RefreshTokens(ctx context.Context, rawRefreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	if rawRefreshToken == "" {
		return models.TokenPair{}, ErrInvalidDataProvided
	}

	claims, err := utils.ValidateAndParseRefreshJWT(rawRefreshToken, a.refreshSecret, a.tokenIssuer)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token failed validation")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	userID, err := claims.UserID()
	if err != nil {
		log.Warn().Err(err).Msg("refresh token carries malformed subject")
		return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("refresh token subject lookup failed")
		if errors.Is(err, store.ErrNoUserWasFound) {
			return models.TokenPair{}, ErrTokenIsExpiredOrInvalid
		}
		return models.TokenPair{}, fmt.Errorf("refresh token subject lookup failed: %w", err)
	}

	pair, err := a.issueTokenPair(user)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("token pair issuance failed")
		return models.TokenPair{}, err
	}

	if err = a.userRepository.RotateRefreshToken(ctx, userID, rawRefreshToken, pair.RefreshToken); err != nil {
		if errors.Is(err, store.ErrRefreshTokenMismatch) {
			log.Warn().Int64("user_id", userID).Msg("refresh token reuse detected")
			return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenIsExpiredOrInvalid, ErrRefreshTokenReused)
		}

		log.Err(err).Int64("user_id", userID).Msg("refresh token rotation failed")
		return models.TokenPair{}, fmt.Errorf("refresh token rotation failed: %w", err)
	}

	return pair, nil
}

// Logout clears the stored refresh token for the user. The current access
// token stays valid until it expires; only refresh flows are cut off.
//
// Logging out an already-logged-out user is not an error.
func (a *authService) Logout(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	if err := a.userRepository.ClearRefreshToken(ctx, userID); err != nil && !errors.Is(err, store.ErrNothingUpdated) {
		log.Err(err).Int64("user_id", userID).Msg("failed to clear refresh token")
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	return nil
}

// ParseAccessToken validates and parses a raw access token string.
//
// It delegates to [utils.ValidateAndParseAccessJWT], verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers do
// not need to inspect low-level JWT errors.
func (a *authService) ParseAccessToken(_ context.Context, tokenString string) (*models.AccessClaims, error) {
	claims, err := utils.ValidateAndParseAccessJWT(tokenString, a.accessSecret, a.tokenIssuer)
	if err != nil {
		return nil, ErrTokenIsExpiredOrInvalid
	}

	return claims, nil
}

// issueTokenPair signs a fresh access/refresh pair for the user.
func (a *authService) issueTokenPair(user models.User) (models.TokenPair, error) {
	accessToken, err := utils.GenerateAccessJWT(user, a.tokenIssuer, a.accessDuration, a.accessSecret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	refreshToken, err := utils.GenerateRefreshJWT(user.UserID, a.tokenIssuer, a.refreshDuration, a.refreshSecret)
	if err != nil {
		return models.TokenPair{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return models.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
