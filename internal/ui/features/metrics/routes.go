package metrics

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
)

// SetupRoutes registers the metrics feature routes.
func SetupRoutes(router chi.Router, session *dashboard.Session, sessionStore sessions.Store) error {
	handlers := NewHandlers(session, sessionStore)

	router.Post("/api/filter", handlers.FilterSSE)
	router.Get("/api/refresh", handlers.RefreshSSE)

	return nil
}
