// Package api exposes the pension calculator over HTTP. Handlers do
// request/response plumbing only; all arithmetic and validation lives in
// the calculation and domain packages.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", h.Calculate)
		r.Post("/compare", h.Compare)
		r.Get("/schemes", h.ListSchemes)
		r.Post("/assistant/message", h.AssistantMessage)
	})

	return r
}
