package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withSecurityHeaders, withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)
		r.Get("/api/info", h.getServerInfo)

		r.Get("/@{username}", h.publicProfile)
		r.Get("/@{username}/{id}", h.publicEntry)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.checkBodyHash)

		r.Post("/api/user/register", h.register)
		r.Post("/api/user/login", h.login)
	})

	// session only
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.checkBodyHash)

		r.Get("/api/user/me", h.me)
		r.Post("/api/user/diary-token", h.enrollDiaryToken)
		r.Post("/api/settings/username", h.updateUsername)
	})

	// session and possession token
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.diaryToken, h.checkBodyHash)

		r.Get("/api/diary", h.listEntries)
		r.Post("/api/diary", h.createEntry)
		r.Get("/api/diary/{id}", h.getEntry)
		r.Put("/api/diary/{id}", h.updateEntry)
		r.Delete("/api/diary/{id}", h.deleteEntry)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
