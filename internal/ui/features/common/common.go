// Package common holds helpers shared by the UI feature packages.
package common

import (
	"encoding/json"

	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/starfederation/datastar-go/datastar"
)

// PreferenceCookie is the gorilla session name storing UI preferences
// (currently the selected year). The database itself is process-scoped;
// only view preferences survive a reload.
const PreferenceCookie = "salescope"

// PatchSurface pushes the full dashboard surface to the client as a
// datastar signal patch. The surface is always sent whole; the client never
// receives partial state.
func PatchSurface(sse *datastar.ServerSentEventGenerator, session *dashboard.Session) error {
	payload, err := json.Marshal(session.Surface())
	if err != nil {
		return err
	}
	return sse.PatchSignals(payload)
}
