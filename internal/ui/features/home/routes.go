package home

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/notifier"
)

// SetupRoutes registers the home feature routes.
func SetupRoutes(router chi.Router, session *dashboard.Session, sessionStore sessions.Store, notify *notifier.Notifier) error {
	handlers := NewHandlers(session, sessionStore, notify)

	router.Get("/", handlers.HomePage)
	router.Get("/updates", handlers.UpdatesSSE)

	return nil
}
