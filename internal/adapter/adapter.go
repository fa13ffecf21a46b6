// Package adapter provides the embedded database engines that back a
// salescope dashboard session.
package adapter

import (
	"context"
	"database/sql"
)

// Config holds the configuration for opening an embedded database.
type Config struct {
	// Type specifies the engine type (e.g., "sqlite", "duckdb")
	Type string

	// Path is the database file path. Use ":memory:" for an in-memory
	// database; a dashboard session defaults to in-memory.
	Path string

	// Options contains additional driver-specific options
	Options map[string]string
}

// Column represents a column in a database table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the data type of the column
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// PrimaryKey indicates whether the column is part of the primary key
	PrimaryKey bool

	// Position is the ordinal position of the column in the table
	Position int
}

// Metadata holds metadata about a database table.
type Metadata struct {
	// Name is the table name
	Name string

	// Type is the object type ("table" or "view")
	Type string

	// Columns contains metadata for each column
	Columns []Column
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all engine adapters must implement.
// A dashboard session owns exactly one connected adapter for its lifetime;
// every other component borrows it for queries and never closes it.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Exec executes a SQL script that doesn't return rows. Multi-statement
	// scripts (seed files, imports) are passed through verbatim.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// ListTables returns the names of user-visible tables, sorted.
	ListTables(ctx context.Context) ([]string, error)

	// TableExists reports whether a user table with the given name exists.
	TableExists(ctx context.Context, table string) (bool, error)

	// GetTableMetadata retrieves column metadata for a table or view.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// DialectName returns the SQL dialect name for this adapter.
	DialectName() string
}
