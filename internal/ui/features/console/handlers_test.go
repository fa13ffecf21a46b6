package console

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/leapstack-labs/salescope/internal/adapter"
	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (chi.Router, *dashboard.Session) {
	t.Helper()

	session := dashboard.New(dashboard.Config{
		Engine: adapter.Config{Type: "sqlite", Path: ":memory:"},
	})
	require.NoError(t, session.Bootstrap(context.Background()))
	t.Cleanup(func() { _ = session.Close() })

	r := chi.NewRouter()
	require.NoError(t, SetupRoutes(r, session))
	return r, session
}

func TestExecuteSSE(t *testing.T) {
	r, _ := newTestRouter(t)

	body := `{"console":{"sql":"SELECT 1 AS one"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/query/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/event-stream")

	out := rec.Body.String()
	assert.Contains(t, out, "datastar-patch-signals")
	assert.Contains(t, out, `"one"`)
}

func TestExecuteSSE_ErrorLandsOnSurface(t *testing.T) {
	r, session := newTestRouter(t)

	body := `{"console":{"sql":"SELECT * FROM missing"}}`
	req := httptest.NewRequest(http.MethodPost, "/api/query/execute", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "engine errors are surface state, not HTTP errors")
	console := session.Surface().Console
	assert.NotEmpty(t, console.Error)
	assert.Nil(t, console.Result)
}

func TestTables(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/query/tables", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Tables []string `json:"tables"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Contains(t, payload.Tables, "orders")
	assert.Contains(t, payload.Tables, "products")
}

func TestSchema(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/query/schema/orders", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var meta adapter.Metadata
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &meta))
	assert.Equal(t, "orders", meta.Name)
	assert.NotEmpty(t, meta.Columns)
}

func TestSchema_NotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/query/schema/nope", nil)
	rec := httptest.NewRecorder()

	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
