package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vidtube/vidtube/models"
)

// GenerateAccessJWT creates a signed HMAC-SHA256 access token for the given user.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the user ID encoded as a string
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus tokenDuration
//   - email, username, fullname: public identity attributes of the user
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Parameters:
//
//	user          - the user the token is issued for
//	issuer        - identifier of the token issuer (e.g. service name)
//	tokenDuration - how long the token remains valid
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	string - the compact signed token
//	error  - non-nil if parameters are invalid or signing fails
func GenerateAccessJWT(user models.User, issuer string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatInt(user.UserID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// refreshTokenIDs supplies the "jti" claim for refresh tokens.
var refreshTokenIDs = NewUUIDGenerator()

// GenerateRefreshJWT creates a signed HMAC-SHA256 refresh token for the given
// user ID. Unlike access tokens, refresh tokens carry only the registered
// claim set — no profile data leaks into the longer-lived credential.
//
// Every token gets a unique "jti" claim. The "iat"/"exp" timestamps have
// second resolution, so without it two tokens minted within the same second
// would serialize to identical strings and a rotation could swap a token for
// itself, leaving the superseded token usable.
//
// Returns the compact signed token or an error if parameters are invalid or
// signing fails.
func GenerateRefreshJWT(userID int64, issuer string, tokenDuration time.Duration, signKey string) (string, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return "", errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &models.RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        refreshTokenIDs.Generate(),
			Issuer:    issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return "", fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return tokenString, nil
}

// ValidateAndParseAccessJWT validates the given access token string and
// extracts its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check
//   - Subject (sub) claim presence
//
// Returns the decoded claims or an error if validation fails or the subject
// is missing.
func ValidateAndParseAccessJWT(tokenString, signKey, tokenIssuer string) (*models.AccessClaims, error) {
	claims := &models.AccessClaims{}
	if err := parseJWT(tokenString, signKey, tokenIssuer, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

// ValidateAndParseRefreshJWT validates the given refresh token string and
// extracts its claims. Validation rules match
// [ValidateAndParseAccessJWT] but use the refresh signing key.
func ValidateAndParseRefreshJWT(tokenString, signKey, tokenIssuer string) (*models.RefreshClaims, error) {
	claims := &models.RefreshClaims{}
	if err := parseJWT(tokenString, signKey, tokenIssuer, claims); err != nil {
		return nil, err
	}

	return claims, nil
}

func parseJWT(tokenString, signKey, tokenIssuer string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if subject == "" {
		return errors.New("empty subject error")
	}

	return nil
}

// ParseBearerToken extracts the bearer token string from a raw
// "Authorization" HTTP header value of the form "<scheme> <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
