package http

import (
	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/service"
)

// defaultBodyLimit bounds JSON and URL-encoded request bodies.
const defaultBodyLimit int64 = 16 << 10

type Handler struct {
	services *service.Services

	// tempDir is the staging directory for multipart image uploads.
	tempDir string

	// corsOrigin is the single allowed CORS origin; empty disables CORS.
	corsOrigin string

	// bodyLimit caps JSON request bodies, in bytes.
	bodyLimit int64

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	bodyLimit := cfg.Server.BodyLimit
	if bodyLimit <= 0 {
		bodyLimit = defaultBodyLimit
	}

	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		tempDir:    cfg.Media.TempDir,
		corsOrigin: cfg.Server.CORSOrigin,
		bodyLimit:  bodyLimit,
		logger:     logger,
	}
}
