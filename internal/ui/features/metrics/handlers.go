// Package metrics provides handlers for the year filter and snapshot
// refresh.
package metrics

import (
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

// FilterSignals carries the year filter selection from the frontend.
type FilterSignals struct {
	SelectedYear string `json:"selectedYear"`
}

// Handlers provides HTTP handlers for the metrics feature.
type Handlers struct {
	session      *dashboard.Session
	sessionStore sessions.Store
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *dashboard.Session, sessionStore sessions.Store) *Handlers {
	return &Handlers{session: session, sessionStore: sessionStore}
}

// FilterSSE applies a year filter change: the aggregate battery re-runs and
// the new surface is pushed back. The years list itself is not recomputed.
func (h *Handlers) FilterSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals FilterSignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	h.session.SetYear(r.Context(), signals.SelectedYear)

	// The preference cookie must be written before the SSE response
	// starts, or its headers are lost.
	h.saveYearPreference(w, r)

	sse := datastar.NewSSE(w, r)
	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// RefreshSSE re-runs introspection and the aggregate battery.
func (h *Handlers) RefreshSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	h.session.Refresh(r.Context())

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}

func (h *Handlers) saveYearPreference(w http.ResponseWriter, r *http.Request) {
	cookie, err := h.sessionStore.Get(r, common.PreferenceCookie)
	if err != nil {
		return
	}
	cookie.Values["year"] = h.session.SelectedYear()
	_ = cookie.Save(r, w)
}
