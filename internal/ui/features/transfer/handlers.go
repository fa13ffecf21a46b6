// Package transfer provides script import and result export handlers.
package transfer

import (
	"fmt"
	"io"
	"net/http"

	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/ui/features/common"
	"github.com/starfederation/datastar-go/datastar"
)

// maxImportBytes caps uploaded script size.
const maxImportBytes = 32 << 20

// Handlers provides HTTP handlers for the transfer feature.
type Handlers struct {
	session *dashboard.Session
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(session *dashboard.Session) *Handlers {
	return &Handlers{session: session}
}

// ImportSSE executes an uploaded SQL script verbatim. Success refreshes the
// table list, years and snapshot; failure puts the engine error on the
// import status and leaves everything else untouched. Either way the new
// surface is streamed back.
func (h *Handlers) ImportSSE(w http.ResponseWriter, r *http.Request) {
	script, err := readUpload(r)

	sse := datastar.NewSSE(w, r)
	if err != nil {
		_ = sse.ConsoleError(err)
		return
	}

	// Import errors are already on the surface; nothing more to report.
	_ = h.session.ImportScript(r.Context(), script)

	if err := common.PatchSurface(sse, h.session); err != nil {
		_ = sse.ConsoleError(err)
	}
}

// Export serves the last console result as a CSV download. With no result
// to export this is a no-op: 204, no file.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	csv, ok := h.session.ExportCSV()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", dashboard.ExportFileName))
	_, _ = io.WriteString(w, csv)
}

func readUpload(r *http.Request) (string, error) {
	if err := r.ParseMultipartForm(maxImportBytes); err != nil {
		return "", fmt.Errorf("failed to parse upload: %w", err)
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return "", fmt.Errorf("missing file upload: %w", err)
	}
	defer func() { _ = file.Close() }()

	content, err := io.ReadAll(io.LimitReader(file, maxImportBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	return string(content), nil
}
