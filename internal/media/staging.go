package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/utils"
)

var uuidGen = utils.NewUUIDGenerator()

// StageMultipartFile copies an incoming multipart upload into tempDir under a
// collision-free name and returns the staged path. The original file
// extension is preserved so the media host can sniff the content type.
//
// The caller owns the staged file; [Uploader.UploadFile] removes it after the
// upload attempt.
func StageMultipartFile(ctx context.Context, tempDir string, header *multipart.FileHeader) (string, error) {
	log := logger.FromContext(ctx)

	if header == nil {
		return "", fmt.Errorf("nil multipart file header")
	}

	src, err := header.Open()
	if err != nil {
		log.Err(err).Str("func", "StageMultipartFile").Msg("failed to open multipart file")
		return "", fmt.Errorf("open multipart file: %w", err)
	}
	defer src.Close()

	if err = os.MkdirAll(tempDir, 0o750); err != nil {
		log.Err(err).Str("func", "StageMultipartFile").Str("dir", tempDir).Msg("failed to create staging directory")
		return "", fmt.Errorf("create staging directory: %w", err)
	}

	stagedPath := filepath.Join(tempDir, uuidGen.Generate()+filepath.Ext(header.Filename))

	dst, err := os.Create(stagedPath)
	if err != nil {
		log.Err(err).Str("func", "StageMultipartFile").Str("path", stagedPath).Msg("failed to create staged file")
		return "", fmt.Errorf("create staged file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		log.Err(err).Str("func", "StageMultipartFile").Str("path", stagedPath).Msg("failed to write staged file")
		RemoveStaged(ctx, stagedPath)
		return "", fmt.Errorf("write staged file: %w", err)
	}

	return stagedPath, nil
}

// RemoveStaged deletes a staged file, logging (but not failing) when the file
// is already gone or cannot be removed.
func RemoveStaged(ctx context.Context, path string) {
	if path == "" {
		return
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "RemoveStaged").Str("path", path).Msg("failed to remove staged file")
	}
}
