package transfer

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/dashboard"
)

// SetupRoutes registers the transfer feature routes.
func SetupRoutes(router chi.Router, session *dashboard.Session) error {
	handlers := NewHandlers(session)

	router.Post("/api/import", handlers.ImportSSE)
	router.Get("/api/export.csv", handlers.Export)

	return nil
}
