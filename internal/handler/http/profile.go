package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vidtube/vidtube/internal/logger"
	"github.com/vidtube/vidtube/internal/utils"
)

// channelProfile handles GET /api/v1/users/c/{username}. The viewer's own ID
// personalizes the isSubscribed flag.
func (h *Handler) channelProfile(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	viewerID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	username := chi.URLParam(r, "username")
	profile, err := h.services.ProfileService.GetChannelProfile(r.Context(), username, viewerID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.channelProfile").Str("username", username).Msg("fetching channel profile failed")
		respondMappedError(w, err, "channel does not exist")
		return
	}

	respond(w, http.StatusOK, profile, "channel profile fetched successfully")
}

// watchHistory handles GET /api/v1/users/history.
func (h *Handler) watchHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized request")
		return
	}

	history, err := h.services.ProfileService.GetWatchHistory(r.Context(), userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.watchHistory").Msg("fetching watch history failed")
		respondMappedError(w, err, "fetching watch history failed")
		return
	}

	respond(w, http.StatusOK, history, "watch history fetched successfully")
}
