package console

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/dashboard"
)

// SetupRoutes registers the console feature routes.
func SetupRoutes(router chi.Router, session *dashboard.Session) error {
	handlers := NewHandlers(session)

	router.Route("/api/query", func(r chi.Router) {
		r.Post("/execute", handlers.ExecuteSSE)
		r.Get("/tables", handlers.Tables)
		r.Get("/schema/{name}", handlers.Schema)
	})

	return nil
}
