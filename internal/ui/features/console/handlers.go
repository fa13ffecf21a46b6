// Package console provides handlers for the ad-hoc SQL console.
package console

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

// QuerySignals carries the console buffer from the frontend.
type QuerySignals struct {
	Console struct {
		SQL string `json:"sql"`
	} `json:"console"`
}

// Handlers provides HTTP handlers for the console feature.
type Handlers struct {
	session *dashboard.Session
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *dashboard.Session) *Handlers {
	return &Handlers{session: session}
}

// ExecuteSSE runs the console buffer exactly as typed. The console is a raw
// pass-through to the engine; the result or error lands on the surface and
// is pushed back whole. Repeated rapid runs each supersede the previous
// result entirely.
func (h *Handlers) ExecuteSSE(w http.ResponseWriter, r *http.Request) {
	// Read signals BEFORE creating SSE (SSE consumes the request body)
	var signals QuerySignals
	if err := datastar.ReadSignals(r, &signals); err != nil {
		sse := datastar.NewSSE(w, r)
		_ = sse.ConsoleError(err)
		return
	}

	sse := datastar.NewSSE(w, r)

	h.session.RunQuery(r.Context(), signals.Console.SQL)

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Tables returns the current table list as JSON.
func (h *Handlers) Tables(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"tables": h.session.Surface().Tables})
}

// Schema returns column metadata for one table as JSON.
func (h *Handlers) Schema(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	meta, err := h.session.DB().GetTableMetadata(r.Context(), name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	writeJSON(w, meta)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
