package config

import (
	"flag"
	"time"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-c/-config json file path with configs
//	-access-token-secret access token signing key
//	-refresh-token-secret refresh token signing key
//	-access-token-duration access token lifetime (e.g., "15m")
//	-refresh-token-duration refresh token lifetime (e.g., "240h")
//	-token-issuer token issuer name
//	-bcrypt-cost bcrypt cost factor for password hashing
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-cors-origin allowed CORS origin
//	-body-limit max JSON/body size in bytes
//	-media-base-url media host base URL
//	-media-api-key media host API key
//	-media-api-secret media host API secret
//	-media-temp-dir local staging directory for multipart uploads
//	-media-request-timeout outbound media request timeout
func ParseFlags() *StructuredConfig {
	var serverAddress string
	var databaseDSN string
	var jsonConfigPath string
	var accessTokenSecret, refreshTokenSecret string
	var accessTokenDuration, refreshTokenDuration time.Duration
	var tokenIssuer string
	var bcryptCost int
	var requestTimeout time.Duration
	var corsOrigin string
	var bodyLimit int64
	var mediaBaseURL, mediaAPIKey, mediaAPISecret, mediaTempDir string
	var mediaRequestTimeout time.Duration

	flag.StringVar(&serverAddress, "a", "", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&accessTokenSecret, "access-token-secret", "", "Access token signing key")
	flag.StringVar(&refreshTokenSecret, "refresh-token-secret", "", "Refresh token signing key")
	flag.DurationVar(&accessTokenDuration, "access-token-duration", 0, "Access token lifetime (e.g., 15m)")
	flag.DurationVar(&refreshTokenDuration, "refresh-token-duration", 0, "Refresh token lifetime (e.g., 240h)")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.IntVar(&bcryptCost, "bcrypt-cost", 0, "Bcrypt cost factor")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&corsOrigin, "cors-origin", "", "Allowed CORS origin")
	flag.Int64Var(&bodyLimit, "body-limit", 0, "Max JSON body size in bytes")
	flag.StringVar(&mediaBaseURL, "media-base-url", "", "Media host base URL")
	flag.StringVar(&mediaAPIKey, "media-api-key", "", "Media host API key")
	flag.StringVar(&mediaAPISecret, "media-api-secret", "", "Media host API secret")
	flag.StringVar(&mediaTempDir, "media-temp-dir", "", "Staging directory for uploads")
	flag.DurationVar(&mediaRequestTimeout, "media-request-timeout", 0, "Outbound media request timeout")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			AccessTokenSecret:    accessTokenSecret,
			RefreshTokenSecret:   refreshTokenSecret,
			AccessTokenDuration:  accessTokenDuration,
			RefreshTokenDuration: refreshTokenDuration,
			TokenIssuer:          tokenIssuer,
			BcryptCost:           bcryptCost,
		},
		Storage: Storage{
			DB: DB{DSN: databaseDSN},
		},
		Server: Server{
			HTTPAddress:    serverAddress,
			RequestTimeout: requestTimeout,
			CORSOrigin:     corsOrigin,
			BodyLimit:      bodyLimit,
		},
		Media: Media{
			BaseURL:        mediaBaseURL,
			APIKey:         mediaAPIKey,
			APISecret:      mediaAPISecret,
			TempDir:        mediaTempDir,
			RequestTimeout: mediaRequestTimeout,
		},
		JSONFilePath: jsonConfigPath,
	}
}
