package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withCORS)
	router.Use(middleware.Recoverer)

	router.Route("/api/v1/users", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/register", h.register)
			r.With(h.withBodyLimit).Post("/login", h.login)
			r.With(h.withBodyLimit).Post("/refresh-token", h.refreshToken)
		})

		// routes protected by the access token
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Post("/logout", h.logout)
			r.With(h.withBodyLimit).Post("/change-password", h.changePassword)
			r.Get("/current-user", h.currentUser)
			r.With(h.withBodyLimit).Patch("/update-account", h.updateAccount)
			r.Patch("/avatar", h.updateAvatar)
			r.Patch("/cover-image", h.updateCoverImage)
			r.Get("/c/{username}", h.channelProfile)
			r.Get("/history", h.watchHistory)
		})
	})

	return router
}
