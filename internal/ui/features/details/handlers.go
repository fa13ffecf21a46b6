// Package details provides handlers for the drill-down modal.
package details

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

// Handlers provides HTTP handlers for the details feature.
type Handlers struct {
	session *dashboard.Session
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *dashboard.Session) *Handlers {
	return &Handlers{session: session}
}

// ShowSSE opens the drill-down modal for a kind and streams the populated
// surface back. Stale in-flight loads are discarded inside the session, so
// clicking through kinds quickly always shows the latest request.
func (h *Handlers) ShowSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	kind := dashboard.DetailKind(chi.URLParam(r, "kind"))
	if err := h.session.ShowDetails(r.Context(), kind); err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// CloseSSE dismisses the modal.
func (h *Handlers) CloseSSE(w http.ResponseWriter, r *http.Request) {
	sse := datastar.NewSSE(w, r)

	h.session.CloseDetails()

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}
