package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLiteAdapter {
	t.Helper()

	a := NewSQLiteAdapter()
	require.NoError(t, a.Connect(context.Background(), Config{Type: "sqlite", Path: ":memory:"}))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestSQLiteAdapter_Registered(t *testing.T) {
	assert.True(t, IsRegistered("sqlite"))

	a, err := New(Config{Type: "sqlite"})
	require.NoError(t, err)
	assert.Equal(t, "sqlite", a.DialectName())
}

func TestSQLiteAdapter_ExecAndQuery(t *testing.T) {
	ctx := context.Background()
	a := newTestSQLite(t)

	err := a.Exec(ctx, `
		CREATE TABLE orders (order_id TEXT, sales REAL);
		INSERT INTO orders VALUES ('O-1', 10.5), ('O-2', 20.0);
	`)
	require.NoError(t, err)

	rows, err := a.Query(ctx, "SELECT order_id, sales FROM orders ORDER BY order_id")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		var sales float64
		require.NoError(t, rows.Scan(&id, &sales))
		ids = append(ids, id)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"O-1", "O-2"}, ids)
}

func TestSQLiteAdapter_ListTables(t *testing.T) {
	ctx := context.Background()
	a := newTestSQLite(t)

	require.NoError(t, a.Exec(ctx, "CREATE TABLE products (id TEXT); CREATE TABLE orders (id TEXT)"))

	tables, err := a.ListTables(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "products"}, tables, "tables should be sorted")
}

func TestSQLiteAdapter_TableExists(t *testing.T) {
	ctx := context.Background()
	a := newTestSQLite(t)

	require.NoError(t, a.Exec(ctx, "CREATE TABLE orders (id TEXT)"))

	exists, err := a.TableExists(ctx, "orders")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = a.TableExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestSQLiteAdapter_GetTableMetadata(t *testing.T) {
	ctx := context.Background()
	a := newTestSQLite(t)

	require.NoError(t, a.Exec(ctx, `
		CREATE TABLE orders (
			order_id TEXT PRIMARY KEY,
			sales REAL NOT NULL,
			notes TEXT
		)
	`))

	meta, err := a.GetTableMetadata(ctx, "orders")
	require.NoError(t, err)
	assert.Equal(t, "orders", meta.Name)
	assert.Equal(t, "table", meta.Type)
	require.Len(t, meta.Columns, 3)

	assert.Equal(t, "order_id", meta.Columns[0].Name)
	assert.True(t, meta.Columns[0].PrimaryKey)

	assert.Equal(t, "sales", meta.Columns[1].Name)
	assert.False(t, meta.Columns[1].Nullable)

	assert.Equal(t, "notes", meta.Columns[2].Name)
	assert.True(t, meta.Columns[2].Nullable)
}

func TestSQLiteAdapter_GetTableMetadata_NotFound(t *testing.T) {
	a := newTestSQLite(t)

	_, err := a.GetTableMetadata(context.Background(), "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestSQLiteAdapter_NotConnected(t *testing.T) {
	a := NewSQLiteAdapter()
	ctx := context.Background()

	assert.Error(t, a.Exec(ctx, "SELECT 1"))

	_, err := a.Query(ctx, "SELECT 1")
	assert.Error(t, err)

	_, err = a.ListTables(ctx)
	assert.Error(t, err)
}
