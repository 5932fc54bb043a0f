package media

//go:generate mockgen -source=uploader.go -destination=../mock/media_mock.go -package=mock

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/utils"
)

// UploadResult is the media host's description of a stored asset.
type UploadResult struct {
	// PublicID is the host-side identifier of the stored asset.
	PublicID string `json:"public_id"`

	// SecureURL is the https URL clients use to fetch the asset.
	SecureURL string `json:"secure_url"`
}

// Uploader pushes locally staged files to the remote media host.
type Uploader interface {
	// UploadFile sends the file at localPath to the media host and returns
	// the hosted asset description. The staged file is removed afterwards
	// regardless of outcome.
	UploadFile(ctx context.Context, localPath string) (UploadResult, error)
}

// hostUploader is the resty-backed implementation of [Uploader] for a
// Cloudinary-style HTTP upload API.
type hostUploader struct {
	client *utils.HTTPClient

	apiKey    string
	apiSecret string

	logger *logger.Logger
}

// NewUploader constructs an [Uploader] from the media host configuration.
// It normalises and validates cfg.BaseURL and configures the underlying
// HTTP client with the resolved base URL and request timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid URL.
func NewUploader(cfg config.Media, logger *logger.Logger) (Uploader, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid media host address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout)

	return &hostUploader{
		client:    client,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		logger:    logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// UploadFile implements [Uploader]. It POSTs the staged file as a multipart
// form to POST <base>/upload, authenticated with the configured API key pair.
// On success the decoded [UploadResult] carries the hosted asset's public ID
// and secure URL.
//
// The staged file is always removed before returning, success or not, so the
// staging directory never accumulates leftovers.
func (h *hostUploader) UploadFile(ctx context.Context, localPath string) (UploadResult, error) {
	defer RemoveStaged(ctx, localPath)

	var result UploadResult

	resp, err := h.client.R().
		SetContext(ctx).
		SetFile("file", localPath).
		SetFormData(map[string]string{"api_key": h.apiKey}).
		SetHeader("X-Api-Secret", h.apiSecret).
		SetResult(&result).
		Post("/upload")
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*hostUploader.UploadFile").Msg("media host request failed")
		return UploadResult{}, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	if err = mapHTTPError(resp); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*hostUploader.UploadFile").Int("status", resp.StatusCode()).Msg("media host rejected upload")
		return UploadResult{}, err
	}

	if result.SecureURL == "" {
		return UploadResult{}, fmt.Errorf("%w: media host returned no secure_url", ErrRejected)
	}

	return result, nil
}
