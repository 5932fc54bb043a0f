package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/utils"
	"github.com/vidtube/vidtube/models"
)

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type updateAccountRequest struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
}

// changePassword handles POST /api/v1/users/change-password.
func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.changePassword").Msg("malformed body")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.services.AccountService.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword); err != nil {
		log.Err(err).Str("func", "*Handler.changePassword").Msg("password change failed")
		respondMappedError(w, err, "password change failed")
		return
	}

	respond(w, http.StatusOK, nil, "password changed successfully")
}

// currentUser handles GET /api/v1/users/current-user.
func (h *Handler) currentUser(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	user, err := h.services.AccountService.CurrentUser(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.currentUser").Msg("fetching current user failed")
		respondMappedError(w, err, "user not found")
		return
	}

	respond(w, http.StatusOK, user.Sanitized(), "current user fetched successfully")
}

// updateAccount handles PATCH /api/v1/users/update-account. Both fields are
// required; partial profile updates go through the image endpoints.
func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	var req updateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.updateAccount").Msg("malformed body")
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.services.AccountService.UpdateAccount(r.Context(), userID, req.FullName, req.Email)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateAccount").Msg("account update failed")
		respondMappedError(w, err, "account update failed")
		return
	}

	respond(w, http.StatusOK, user.Sanitized(), "account details updated successfully")
}

// updateAvatar handles PATCH /api/v1/users/avatar.
func (h *Handler) updateAvatar(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "avatar", "avatar updated successfully",
		h.services.AccountService.UpdateAvatar)
}

// updateCoverImage handles PATCH /api/v1/users/cover-image.
func (h *Handler) updateCoverImage(w http.ResponseWriter, r *http.Request) {
	h.updateImage(w, r, "coverImage", "cover image updated successfully",
		h.services.AccountService.UpdateCoverImage)
}

// updateImage is the shared flow of the two image endpoints: stage the
// multipart file, hand the staged path to the service, return the updated
// sanitized user.
func (h *Handler) updateImage(
	w http.ResponseWriter,
	r *http.Request,
	field, successMessage string,
	update func(ctx context.Context, userID int64, stagedPath string) (models.User, error),
) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		log.Warn().Err(err).Str("func", "*Handler.updateImage").Msg("malformed multipart form")
		respondError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	stagedPath, err := h.stageFormFile(r, field)
	if err != nil {
		log.Warn().Err(err).Str("func", "*Handler.updateImage").Str("field", field).Msg("image file missing or unreadable")
		respondError(w, http.StatusBadRequest, field+" file is required")
		return
	}

	user, err := update(r.Context(), userID, stagedPath)
	if err != nil {
		log.Err(err).Str("func", "*Handler.updateImage").Str("field", field).Msg("image update failed")
		respondMappedError(w, err, "image update failed")
		return
	}

	respond(w, http.StatusOK, user.Sanitized(), successMessage)
}
