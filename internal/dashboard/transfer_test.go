package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/leapstack-labs/salescope/internal/adapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportScript_Success(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	script := `
		CREATE TABLE returns (order_id TEXT);
		INSERT INTO orders VALUES
			('O-9', '07/04/2021', 'Dana', 'North', 'Express', 'P-1', 500.0, 3, 80.0);
	`
	require.NoError(t, s.ImportScript(context.Background(), script))

	surface := s.Surface()
	assert.Equal(t, "Import complete", surface.ImportStatus)

	// The new table and year are visible without restarting
	assert.Contains(t, surface.Tables, "returns")
	assert.Contains(t, surface.Years, "2021")

	// The snapshot reflects the imported order
	require.NotNil(t, surface.Snapshot)
	assert.Equal(t, int64(4), surface.Snapshot.TotalOrders)
}

func TestImportScript_FailureLeavesStateUntouched(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	before := s.Surface()

	err := s.ImportScript(context.Background(), "CREATE BROKEN SYNTAX")
	require.Error(t, err)

	after := s.Surface()
	assert.Contains(t, after.ImportStatus, "Import failed")
	assert.Equal(t, before.Tables, after.Tables)
	assert.Equal(t, before.Years, after.Years)
	assert.Equal(t, before.Snapshot, after.Snapshot)
}

func TestImportScript_NotReady(t *testing.T) {
	s := New(Config{Engine: adapter.Config{Type: "sqlite"}})

	err := s.ImportScript(context.Background(), "SELECT 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not ready")
}

func TestExportCSV_NoResult(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	_, ok := s.ExportCSV()
	assert.False(t, ok, "nothing to export before a console run")
}

func TestExportCSV_EmptyResult(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	s.RunQuery(context.Background(), "SELECT order_id FROM orders WHERE 1 = 0")

	_, ok := s.ExportCSV()
	assert.False(t, ok, "zero rows is a no-op, not an empty file")
}

func TestExportCSV(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	s.RunQuery(context.Background(), "SELECT order_id, customer_name FROM orders ORDER BY order_id")

	csv, ok := s.ExportCSV()
	require.True(t, ok)

	lines := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, lines, 4, "header plus one line per row")
	assert.Equal(t, "order_id,customer_name", lines[0])
	assert.Equal(t, "O-1,Alice", lines[1])
}

func TestExportCSV_NullsRenderAsNULL(t *testing.T) {
	s := newTestSession(t, writeSeed(t, minimalSeed))

	s.RunQuery(context.Background(), "SELECT NULL AS c")

	csv, ok := s.ExportCSV()
	require.True(t, ok)
	assert.Contains(t, csv, "NULL")
}
