// Package router sets up HTTP routes for the dashboard server.
package router

import (
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	consoleFeature "github.com/leapstack-labs/salescope/internal/ui/features/console"
	detailsFeature "github.com/leapstack-labs/salescope/internal/ui/features/details"
	homeFeature "github.com/leapstack-labs/salescope/internal/ui/features/home"
	metricsFeature "github.com/leapstack-labs/salescope/internal/ui/features/metrics"
	transferFeature "github.com/leapstack-labs/salescope/internal/ui/features/transfer"
	"github.com/leapstack-labs/salescope/internal/ui/notifier"
	"github.com/leapstack-labs/salescope/internal/ui/resources"
)

// SetupRoutes configures all routes for the dashboard server.
func SetupRoutes(
	router chi.Router,
	session *dashboard.Session,
	sessionStore *sessions.CookieStore,
	notify *notifier.Notifier,
) error {
	// Static assets
	router.Handle("/static/*", resources.Handler())

	// Feature routes
	if err := homeFeature.SetupRoutes(router, session, sessionStore, notify); err != nil {
		return err
	}

	if err := metricsFeature.SetupRoutes(router, session, sessionStore); err != nil {
		return err
	}

	if err := consoleFeature.SetupRoutes(router, session); err != nil {
		return err
	}

	if err := detailsFeature.SetupRoutes(router, session); err != nil {
		return err
	}

	if err := transferFeature.SetupRoutes(router, session); err != nil {
		return err
	}

	return nil
}
