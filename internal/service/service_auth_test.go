package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidtube/vidtube/internal/config"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/mock"
	"github.com/vidtube/vidtube/internal/store"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
	"go.uber.org/mock/gomock"
)

var testAppCfg = config.App{
	AccessTokenSecret:    "access-secret",
	RefreshTokenSecret:   "refresh-secret",
	AccessTokenDuration:  15 * time.Minute,
	RefreshTokenDuration: 24 * time.Hour,
	TokenIssuer:          "vidtube",
	BcryptCost:           4, // minimum cost keeps the suite fast
}

func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockUserRepository) {
	t.Helper()
	mockRepo := mock.NewMockUserRepository(ctrl)
	svc := NewAuthService(mockRepo, testAppCfg, logger.NewLogger("test")).(*authService)
	return svc, mockRepo
}

func hashedPassword(t *testing.T, password string) string {
	t.Helper()
	digest, err := utils.HashPassword(password, testAppCfg.BcryptCost)
	require.NoError(t, err)
	return digest
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := models.User{
		UserID:       42,
		Username:     "john",
		Email:        "john@example.com",
		FullName:     "John Doe",
		PasswordHash: hashedPassword(t, "Passw0rd!"),
	}

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByLogin(ctx, "john", "").Return(storedUser, nil),
		mockRepo.EXPECT().SetRefreshToken(ctx, int64(42), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ int64, token string) error {
				// the stored token must be the one handed back in the pair
				claims, parseErr := utils.ValidateAndParseRefreshJWT(token, testAppCfg.RefreshTokenSecret, testAppCfg.TokenIssuer)
				require.NoError(t, parseErr)
				userID, idErr := claims.UserID()
				require.NoError(t, idErr)
				assert.Equal(t, int64(42), userID)
				return nil
			},
		),
	)

	user, pair, err := svc.Login(ctx, "john", "", "Passw0rd!")
	require.NoError(t, err)

	assert.Equal(t, int64(42), user.UserID)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := utils.ValidateAndParseAccessJWT(pair.AccessToken, testAppCfg.AccessTokenSecret, testAppCfg.TokenIssuer)
	require.NoError(t, err)
	assert.Equal(t, "john", claims.Username)
	assert.Equal(t, "john@example.com", claims.Email)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, _, err := svc.Login(context.Background(), "", "", "Passw0rd!")
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, _, err = svc.Login(context.Background(), "john", "", "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().FindUserByLogin(ctx, "ghost", "").Return(models.User{}, store.ErrNoUserWasFound)

	_, _, err := svc.Login(ctx, "ghost", "", "Passw0rd!")
	require.ErrorIs(t, err, store.ErrNoUserWasFound)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := models.User{UserID: 42, Username: "john", PasswordHash: hashedPassword(t, "Passw0rd!")}

	mockRepo.EXPECT().FindUserByLogin(ctx, "john", "").Return(storedUser, nil)

	_, _, err := svc.Login(ctx, "john", "", "not-the-password")
	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_ByEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	storedUser := models.User{UserID: 7, Username: "john", Email: "john@example.com", PasswordHash: hashedPassword(t, "Passw0rd!")}

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByLogin(ctx, "", "john@example.com").Return(storedUser, nil),
		mockRepo.EXPECT().SetRefreshToken(ctx, int64(7), gomock.Any()).Return(nil),
	)

	user, _, err := svc.Login(ctx, "", "john@example.com", "Passw0rd!")
	require.NoError(t, err)
	assert.Equal(t, int64(7), user.UserID)
}

// ── RefreshTokens ────────────────────────────────────────────────────────────

func validRefreshToken(t *testing.T, userID int64) string {
	t.Helper()
	token, err := utils.GenerateRefreshJWT(userID, testAppCfg.TokenIssuer, testAppCfg.RefreshTokenDuration, testAppCfg.RefreshTokenSecret)
	require.NoError(t, err)
	return token
}

func TestAuthService_RefreshTokens_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	oldToken := validRefreshToken(t, 42)
	storedUser := models.User{UserID: 42, Username: "john", Email: "john@example.com"}

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByID(ctx, int64(42)).Return(storedUser, nil),
		mockRepo.EXPECT().RotateRefreshToken(ctx, int64(42), oldToken, gomock.Any()).Return(nil),
	)

	pair, err := svc.RefreshTokens(ctx, oldToken)
	require.NoError(t, err)

	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, oldToken, pair.RefreshToken)
}

// TestAuthService_RefreshTokens_ImmediateRotationDiffers covers the
// login→refresh flow where the presented token was minted within the same
// wall-clock second. The jti claim must guarantee the rotation swaps in a
// different token; a rotation that stores the value it replaces would leave
// the superseded token usable.
func TestAuthService_RefreshTokens_ImmediateRotationDiffers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	oldToken := validRefreshToken(t, 42)
	storedUser := models.User{UserID: 42, Username: "john", Email: "john@example.com"}

	var rotatedTo string
	gomock.InOrder(
		mockRepo.EXPECT().FindUserByID(ctx, int64(42)).Return(storedUser, nil),
		mockRepo.EXPECT().RotateRefreshToken(ctx, int64(42), oldToken, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _, newToken string) error {
				rotatedTo = newToken
				return nil
			}),
	)

	pair, err := svc.RefreshTokens(ctx, oldToken)
	require.NoError(t, err)

	require.NotEqual(t, oldToken, pair.RefreshToken, "rotation must never return the token it replaces")
	assert.Equal(t, pair.RefreshToken, rotatedTo)

	claims, err := utils.ValidateAndParseRefreshJWT(pair.RefreshToken, testAppCfg.RefreshTokenSecret, testAppCfg.TokenIssuer)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestAuthService_RefreshTokens_EmptyToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RefreshTokens(context.Background(), "")
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RefreshTokens_GarbageToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.RefreshTokens(context.Background(), "not.a.jwt")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RefreshTokens_AccessTokenRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)

	// an access token signed with the access secret must not pass as a
	// refresh token
	accessToken, err := utils.GenerateAccessJWT(
		models.User{UserID: 42, Username: "john", Email: "john@example.com"},
		testAppCfg.TokenIssuer, testAppCfg.AccessTokenDuration, testAppCfg.AccessTokenSecret)
	require.NoError(t, err)

	_, err = svc.RefreshTokens(context.Background(), accessToken)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_RefreshTokens_Reused(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	staleToken := validRefreshToken(t, 42)

	gomock.InOrder(
		mockRepo.EXPECT().FindUserByID(ctx, int64(42)).Return(models.User{UserID: 42}, nil),
		mockRepo.EXPECT().RotateRefreshToken(ctx, int64(42), staleToken, gomock.Any()).Return(store.ErrRefreshTokenMismatch),
	)

	_, err := svc.RefreshTokens(ctx, staleToken)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
	require.ErrorIs(t, err, ErrRefreshTokenReused)
}

func TestAuthService_RefreshTokens_SubjectGone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	token := validRefreshToken(t, 404)

	mockRepo.EXPECT().FindUserByID(ctx, int64(404)).Return(models.User{}, store.ErrNoUserWasFound)

	_, err := svc.RefreshTokens(ctx, token)
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().ClearRefreshToken(ctx, int64(42)).Return(nil)

	require.NoError(t, svc.Logout(ctx, 42))
}

func TestAuthService_Logout_AlreadyLoggedOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().ClearRefreshToken(ctx, int64(42)).Return(store.ErrNothingUpdated)

	require.NoError(t, svc.Logout(ctx, 42))
}

func TestAuthService_Logout_StorageError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockRepo := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockRepo.EXPECT().ClearRefreshToken(ctx, int64(42)).Return(errors.New("db down"))

	require.Error(t, svc.Logout(ctx, 42))
}

// ── ParseAccessToken ─────────────────────────────────────────────────────────

func TestAuthService_ParseAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	accessToken, err := utils.GenerateAccessJWT(
		models.User{UserID: 42, Username: "john", Email: "john@example.com", FullName: "John Doe"},
		testAppCfg.TokenIssuer, testAppCfg.AccessTokenDuration, testAppCfg.AccessTokenSecret)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(ctx, accessToken)
	require.NoError(t, err)

	userID, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "john", claims.Username)

	_, err = svc.ParseAccessToken(ctx, "broken")
	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
