package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/models"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account creation, lookup, partial updates, and the refresh-token
// lifecycle against the "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// The INSERT uses the [createUser] query which returns all columns via a
// RETURNING clause, so the caller receives the canonical database
// representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped with [ErrScanningRow].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createUser,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.AvatarURL, user.CoverImageURL)

	var created models.User
	if err := scanUser(row, &created); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Bool("retryable", r.db.IsRetryable(err)).Msg("error creating user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		}
		if errors.Is(err, ErrScanningRow) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindUserByID retrieves a user record by internal identifier.
//
// Error handling:
//   - No matching row → [ErrNoUserWasFound].
//   - Any other driver-level error → wrapped as "unexpected DB error".
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByID").Int64("user_id", userID).Bool("retryable", r.db.IsRetryable(err)).Msg("error finding user by id")
		if errors.Is(err, ErrScanningRow) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindUserByLogin retrieves the first user whose username or email matches
// one of the given values. The query is built dynamically via
// [buildFindUserByLoginQuery].
func (r *userRepository) FindUserByLogin(ctx context.Context, username, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindUserByLoginQuery(ctx, username, email)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.FindUserByLogin").Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var found models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if scanErr := scanUser(row, &found); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(scanErr).Str("func", "*userRepository.FindUserByLogin").Str("username", username).Bool("retryable", r.db.IsRetryable(scanErr)).Msg("error finding user by login")
		if errors.Is(scanErr, ErrScanningRow) {
			return models.User{}, scanErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", scanErr)
	}

	return found, nil
}

// FindUserByUsername retrieves a user record by exact username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByUsername, username)

	if err := scanUser(row, &found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(err).Str("func", "*userRepository.FindUserByUsername").Str("username", username).Bool("retryable", r.db.IsRetryable(err)).Msg("error finding user by username")
		if errors.Is(err, ErrScanningRow) {
			return models.User{}, err
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// SetRefreshToken unconditionally replaces the stored refresh token for the
// user. Used at login, where any previously issued token is superseded.
//
// Returns [ErrNothingUpdated] when the user record does not exist.
func (r *userRepository) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setRefreshToken, userID, token)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.SetRefreshToken").Int64("user_id", userID).Bool("retryable", r.db.IsRetryable(err)).Msg("error setting refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNothingUpdated
	}

	return nil
}

// RotateRefreshToken atomically replaces the stored refresh token, but only
// when the stored value equals oldToken. A zero-row update means the stored
// token was already rotated, cleared, or never matched — the caller must treat
// the presented token as invalid.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, rotateRefreshToken, userID, oldToken, newToken)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.RotateRefreshToken").Int64("user_id", userID).Bool("retryable", r.db.IsRetryable(err)).Msg("error rotating refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		log.Warn().Str("func", "*userRepository.RotateRefreshToken").Int64("user_id", userID).Msg("refresh token compare-and-swap matched no row")
		return ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken removes the stored refresh token, logging the user out of
// all refresh flows. Clearing an already-cleared token is not an error.
func (r *userRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, clearRefreshToken, userID)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ClearRefreshToken").Int64("user_id", userID).Bool("retryable", r.db.IsRetryable(err)).Msg("error clearing refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrNothingUpdated
	}

	return nil
}

// UpdateUser applies a partial update built by [buildUpdateUserQuery] and
// returns the post-write record from the RETURNING clause.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists]
//     (e.g. changing the email to one already taken).
//   - No matching row → [ErrNoUserWasFound].
func (r *userRepository) UpdateUser(ctx context.Context, update models.UserUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(ctx, update)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", update.UserID).Msg("failed to build query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if scanErr := scanUser(row, &updated); scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return models.User{}, ErrNoUserWasFound
		}

		log.Err(scanErr).Str("func", "*userRepository.UpdateUser").Int64("user_id", update.UserID).Bool("retryable", r.db.IsRetryable(scanErr)).Msg("error updating user")

		switch postgresError(scanErr) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		}
		if errors.Is(scanErr, ErrScanningRow) {
			return models.User{}, scanErr
		}
		return models.User{}, fmt.Errorf("unexpected DB error: %w", scanErr)
	}

	return updated, nil
}

// scanUser reads the canonical user column set (see [userColumns]) from a
// single-row result into dst. [sql.ErrNoRows] and driver errors surface
// unwrapped; genuine scan failures are wrapped with [ErrScanningRow].
func scanUser(row *sql.Row, dst *models.User) error {
	if err := row.Err(); err != nil {
		return err
	}

	err := row.Scan(
		&dst.UserID,
		&dst.Username,
		&dst.Email,
		&dst.FullName,
		&dst.PasswordHash,
		&dst.AvatarURL,
		&dst.CoverImageURL,
		&dst.RefreshToken,
		&dst.CreatedAt,
		&dst.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || postgresError(err) != "" {
			return err
		}
		return fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return nil
}
