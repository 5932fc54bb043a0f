package http

import (
	"encoding/json"
	"net/http"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/media"
	"github.com/vidtube/vidtube/internal/service"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"

	// maxMultipartMemory bounds the in-memory part of multipart parsing;
	// larger files spill to disk.
	maxMultipartMemory int64 = 10 << 20
)

type loginRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	User         models.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// register handles POST /api/v1/users/register. The request is multipart:
// profile fields plus an avatar file (required) and a cover image (optional).
// Files are staged to the local temp directory before the service forwards
// them to the media host.
func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.register").Msg("malformed multipart form")
		respondError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	input := service.RegisterInput{
		FullName: r.FormValue("fullname"),
		Email:    r.FormValue("email"),
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	avatarPath, err := h.stageFormFile(r, "avatar")
	if err != nil {
		log.Warn().Err(err).Str("func", "*Handler.register").Msg("avatar file missing or unreadable")
		respondError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	input.AvatarPath = avatarPath

	if _, header, coverErr := r.FormFile("coverImage"); coverErr == nil && header != nil {
		coverPath, stageErr := media.StageMultipartFile(ctx, h.tempDir, header)
		if stageErr != nil {
			log.Err(stageErr).Str("func", "*Handler.register").Msg("staging cover image failed")
			media.RemoveStaged(ctx, avatarPath)
			respondError(w, http.StatusBadRequest, "cover image could not be read")
			return
		}
		input.CoverImagePath = coverPath
	}

	user, err := h.services.AccountService.Register(ctx, input)
	if err != nil {
		log.Err(err).Str("func", "*Handler.register").Msg("registration failed")
		respondMappedError(w, err, "registration failed")
		return
	}

	respond(w, http.StatusCreated, user.Sanitized(), "user registered successfully")
}

// login handles POST /api/v1/users/login. Credentials may name the account by
// username or email. The issued pair is returned both in the body and as
// httpOnly cookies.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.login").Msg("malformed login body")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, pair, err := h.services.AuthService.Login(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		log.Err(err).Str("func", "*Handler.login").Msg("login failed")
		respondMappedError(w, err, "invalid user credentials")
		return
	}

	setAuthCookies(w, pair)
	respond(w, http.StatusOK, loginResponse{
		User:         user.Sanitized(),
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}

// logout handles POST /api/v1/users/logout. The stored refresh token is
// cleared server-side and both auth cookies are expired.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := h.services.AuthService.Logout(r.Context(), userID); err != nil {
		log.Err(err).Str("func", "*Handler.logout").Msg("logout failed")
		respondMappedError(w, err, "logout failed")
		return
	}

	clearAuthCookies(w)
	respond(w, http.StatusOK, nil, "user logged out")
}

// refreshToken handles POST /api/v1/users/refresh-token. The refresh token is
// read from the cookie first, then from the JSON body, and exchanged for a
// fresh pair via the atomic rotation in the auth service.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	rawToken := ""
	if cookie, err := r.Cookie(refreshTokenCookie); err == nil {
		rawToken = cookie.Value
	}
	if rawToken == "" {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err == nil {
			rawToken = req.RefreshToken
		}
	}
	if rawToken == "" {
		log.Warn().Str("func", "*Handler.refreshToken").Msg("no refresh token in request")
		respondError(w, http.StatusUnauthorized, ErrNoRefreshToken.Error())
		return
	}

	pair, err := h.services.AuthService.RefreshTokens(r.Context(), rawToken)
	if err != nil {
		log.Err(err).Str("func", "*Handler.refreshToken").Msg("refresh rotation failed")
		respondMappedError(w, err, "refresh token is expired or invalid")
		return
	}

	setAuthCookies(w, pair)
	respond(w, http.StatusOK, pair, "access token refreshed")
}

// stageFormFile copies the named multipart file into the staging directory
// and returns the staged path.
func (h *Handler) stageFormFile(r *http.Request, field string) (string, error) {
	_, header, err := r.FormFile(field)
	if err != nil {
		return "", err
	}
	return media.StageMultipartFile(r.Context(), h.tempDir, header)
}

func setAuthCookies(w http.ResponseWriter, pair models.TokenPair) {
	http.SetCookie(w, &http.Cookie{
		Name:     accessTokenCookie,
		Value:    pair.AccessToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     refreshTokenCookie,
		Value:    pair.RefreshToken,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{accessTokenCookie, refreshTokenCookie} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
	}
}
