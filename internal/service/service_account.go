package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/media"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

// accountService is the concrete implementation of [AccountService]. It owns
// everything that mutates a user record: registration, password changes,
// profile field updates, and image replacement through the media host.
type accountService struct {
	userRepository store.UserRepository
	uploader       media.Uploader

	// bcryptCost is the cost factor applied when hashing passwords.
	bcryptCost int

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// repository and media uploader.
func NewAccountService(userRepository store.UserRepository, uploader media.Uploader, cfg config.App, logger *logger.Logger) AccountService {
	return &accountService{
		userRepository: userRepository,
		uploader:       uploader,
		bcryptCost:     cfg.BcryptCost,
		logger:         logger,
	}
}

// Register creates a new user account.
//
// Username and email are lowercased before any comparison or storage, so
// lookups are case-insensitive by construction. The duplicate check runs
// before the avatar upload to avoid pushing files to the media host for an
// account that cannot be created; the unique constraints still backstop the
// race where two registrations interleave.
//
// Returns the persisted user (with server-assigned fields) or:
//   - ErrInvalidDataProvided if any required field, including the staged
//     avatar, is missing.
//   - [store.ErrUserAlreadyExists] if the username or email is taken.
//   - A wrapped media error if an image upload fails.
func (a *accountService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	log := logger.FromContext(ctx)

	input.Username = strings.ToLower(strings.TrimSpace(input.Username))
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.FullName = strings.TrimSpace(input.FullName)

	if input.Username == "" || input.Email == "" || input.FullName == "" || input.Password == "" || input.AvatarPath == "" {
		log.Error().Str("username", input.Username).Msg("invalid registration data provided")
		media.RemoveStaged(ctx, input.AvatarPath)
		media.RemoveStaged(ctx, input.CoverImagePath)
		return models.User{}, ErrInvalidDataProvided
	}

	_, err := a.userRepository.FindUserByLogin(ctx, input.Username, input.Email)
	if err == nil {
		log.Warn().Str("username", input.Username).Msg("username or email already taken")
		media.RemoveStaged(ctx, input.AvatarPath)
		media.RemoveStaged(ctx, input.CoverImagePath)
		return models.User{}, store.ErrUserAlreadyExists
	}
	if !errors.Is(err, store.ErrNoUserWasFound) {
		log.Err(err).Str("username", input.Username).Msg("duplicate check failed")
		media.RemoveStaged(ctx, input.AvatarPath)
		media.RemoveStaged(ctx, input.CoverImagePath)
		return models.User{}, fmt.Errorf("duplicate check failed: %w", err)
	}

	passwordHash, err := utils.HashPassword(input.Password, a.bcryptCost)
	if err != nil {
		log.Err(err).Str("username", input.Username).Msg("password hashing failed")
		media.RemoveStaged(ctx, input.AvatarPath)
		media.RemoveStaged(ctx, input.CoverImagePath)
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	avatar, err := a.uploader.UploadFile(ctx, input.AvatarPath)
	if err != nil {
		log.Err(err).Str("username", input.Username).Msg("avatar upload failed")
		media.RemoveStaged(ctx, input.CoverImagePath)
		return models.User{}, fmt.Errorf("avatar upload failed: %w", err)
	}

	coverImageURL := ""
	if input.CoverImagePath != "" {
		cover, coverErr := a.uploader.UploadFile(ctx, input.CoverImagePath)
		if coverErr != nil {
			log.Err(coverErr).Str("username", input.Username).Msg("cover image upload failed")
			return models.User{}, fmt.Errorf("cover image upload failed: %w", coverErr)
		}
		coverImageURL = cover.SecureURL
	}

	created, err := a.userRepository.CreateUser(ctx, models.User{
		Username:      input.Username,
		Email:         input.Email,
		FullName:      input.FullName,
		PasswordHash:  passwordHash,
		AvatarURL:     avatar.SecureURL,
		CoverImageURL: coverImageURL,
	})
	if err != nil {
		log.Err(err).Str("username", input.Username).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// CurrentUser returns the account record of the authenticated user.
func (a *accountService) CurrentUser(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("current user lookup failed")
		return models.User{}, fmt.Errorf("current user lookup failed: %w", err)
	}

	return user, nil
}

// ChangePassword verifies the old password against the stored digest and
// replaces it with a hash of the new one.
//
// Returns:
//   - ErrInvalidDataProvided if either password is empty.
//   - ErrWrongPassword if the old password does not match.
func (a *accountService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	log := logger.FromContext(ctx)

	if oldPassword == "" || newPassword == "" {
		return ErrInvalidDataProvided
	}

	user, err := a.userRepository.FindUserByID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password change lookup failed")
		return fmt.Errorf("password change lookup failed: %w", err)
	}

	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		log.Warn().Int64("user_id", userID).Msg("old password does not match")
		return ErrWrongPassword
	}

	newHash, err := utils.HashPassword(newPassword, a.bcryptCost)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	if _, err = a.userRepository.UpdateUser(ctx, models.UserUpdate{UserID: userID, PasswordHash: &newHash}); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("password update failed")
		return fmt.Errorf("password update failed: %w", err)
	}

	return nil
}

// UpdateAccount replaces the full name and email of the account. Both fields
// are required; the email is lowercased before storage.
//
// Returns [store.ErrUserAlreadyExists] when the new email is already taken.
func (a *accountService) UpdateAccount(ctx context.Context, userID int64, fullName, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))

	if fullName == "" || email == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	updated, err := a.userRepository.UpdateUser(ctx, models.UserUpdate{
		UserID:   userID,
		FullName: &fullName,
		Email:    &email,
	})
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("account update failed")
		return models.User{}, fmt.Errorf("account update failed: %w", err)
	}

	return updated, nil
}

// UpdateAvatar uploads the staged file to the media host and stores the new
// avatar URL. The previous asset is left on the host; the record simply stops
// referencing it.
func (a *accountService) UpdateAvatar(ctx context.Context, userID int64, stagedPath string) (models.User, error) {
	return a.updateImage(ctx, userID, stagedPath, func(url string) models.UserUpdate {
		return models.UserUpdate{UserID: userID, AvatarURL: &url}
	})
}

// UpdateCoverImage uploads the staged file to the media host and stores the
// new cover image URL.
func (a *accountService) UpdateCoverImage(ctx context.Context, userID int64, stagedPath string) (models.User, error) {
	return a.updateImage(ctx, userID, stagedPath, func(url string) models.UserUpdate {
		return models.UserUpdate{UserID: userID, CoverImageURL: &url}
	})
}

func (a *accountService) updateImage(ctx context.Context, userID int64, stagedPath string, toUpdate func(url string) models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if stagedPath == "" {
		return models.User{}, ErrInvalidDataProvided
	}

	result, err := a.uploader.UploadFile(ctx, stagedPath)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("image upload failed")
		return models.User{}, fmt.Errorf("image upload failed: %w", err)
	}

	updated, err := a.userRepository.UpdateUser(ctx, toUpdate(result.SecureURL))
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("image update failed")
		return models.User{}, fmt.Errorf("image update failed: %w", err)
	}

	return updated, nil
}
