// Package home serves the dashboard page and its live update stream.
package home

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/features/common"
	"github.com/leapstack-labs/salescope/internal/ui/notifier"
	"github.com/leapstack-labs/salescope/internal/ui/resources"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the home feature.
type Handlers struct {
	session      *dashboard.Session
	sessionStore sessions.Store
	notifier     *notifier.Notifier
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *dashboard.Session, sessionStore sessions.Store, notify *notifier.Notifier) *Handlers {
	return &Handlers{
		session:      session,
		sessionStore: sessionStore,
		notifier:     notify,
	}
}

// HomePage serves the dashboard shell. All data arrives over /updates.
func (h *Handlers) HomePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(resources.IndexHTML())
}

// UpdatesSSE streams the dashboard surface to the client: one signal patch
// immediately, then one per notifier ping until the client disconnects.
func (h *Handlers) UpdatesSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	// Restore the year preference saved in the cookie session, once,
	// before the first patch.
	h.restoreYearPreference(r)

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	updates, unsubscribe := h.notifier.Subscribe()
	defer unsubscribe()

	for {
		select {
		case <-r.Context().Done():
			return
		case _, ok := <-updates:
			if !ok {
				return
			}
			if err := common.PatchSurface(sse, h.session); err != nil {
				return
			}
		}
	}
}

func (h *Handlers) restoreYearPreference(r *http.Request) {
	if !h.session.Ready() {
		return
	}
	cookie, err := h.sessionStore.Get(r, common.PreferenceCookie)
	if err != nil {
		return
	}
	year, ok := cookie.Values["year"].(string)
	if !ok || year == "" || year == h.session.SelectedYear() {
		return
	}
	h.session.SetYear(r.Context(), year)
}
