package commands

import (
	"context"
	"io"

	"github.com/leapstack-labs/salescope/internal/dashboard"
	"github.com/leapstack-labs/salescope/internal/query"
)

func listTables(ctx context.Context, w io.Writer, session *dashboard.Session, format string) error {
	tables, err := session.DB().ListTables(ctx)
	if err != nil {
		return err
	}

	result := &query.Result{Columns: []string{"name"}}
	for _, table := range tables {
		result.Rows = append(result.Rows, []any{table})
	}

	return query.Render(w, result, format)
}

func showSchema(ctx context.Context, w io.Writer, session *dashboard.Session, tableName, format string) error {
	meta, err := session.DB().GetTableMetadata(ctx, tableName)
	if err != nil {
		return err
	}

	result := &query.Result{Columns: []string{"name", "type", "nullable"}}
	for _, col := range meta.Columns {
		nullable := "YES"
		if !col.Nullable {
			nullable = "NO"
		}
		result.Rows = append(result.Rows, []any{col.Name, col.Type, nullable})
	}

	return query.Render(w, result, format)
}
