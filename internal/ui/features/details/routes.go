package details

import (
	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/dashboard"
)

// SetupRoutes registers the details feature routes.
func SetupRoutes(router chi.Router, session *dashboard.Session) error {
	handlers := NewHandlers(session)

	router.Route("/api/details", func(r chi.Router) {
		r.Post("/close", handlers.CloseSSE)
		r.Post("/{kind}", handlers.ShowSSE)
	})

	return nil
}
