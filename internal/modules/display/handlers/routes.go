package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all display routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/display", func(r chi.Router) {
		r.Get("/", h.HandleGetScreen)
		r.Post("/next", h.HandleNext)
		r.Put("/lock", h.HandleSetLock)
	})
}
