package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/salescope/internal/query"
)

// ExportFileName is the download name for console result exports.
const ExportFileName = "query_results.csv"

// ImportScript executes user-supplied SQL text as a script against the
// handle. On success the table list, years and snapshot are refreshed; on
// failure only the import status carries the engine error and all other
// state is untouched.
func (s *Session) ImportScript(ctx context.Context, script string) error {
	if !s.Ready() {
		return fmt.Errorf("session is not ready")
	}

	if err := s.db.Exec(ctx, script); err != nil {
		s.logger.Warn("import failed", "error", err)
		s.mutate(func(sf *Surface) {
			sf.ImportStatus = fmt.Sprintf("Import failed: %v", err)
		})
		return err
	}

	s.logger.Info("script imported", "bytes", len(script))
	s.mutate(func(sf *Surface) {
		sf.ImportStatus = "Import complete"
	})

	s.Refresh(ctx)
	return nil
}

// ExportCSV serializes the last console result to comma-delimited text:
// the ordered column names as the header, then one line per row. Values
// are joined as-is with no quoting or delimiter escaping. Returns false
// when there is no result to export.
func (s *Session) ExportCSV() (string, bool) {
	result := s.LastResult()
	if result == nil || result.RowCount() == 0 {
		return "", false
	}

	var b strings.Builder
	b.WriteString(strings.Join(result.Columns, ","))
	b.WriteByte('\n')

	for _, row := range result.Rows {
		values := make([]string, len(result.Columns))
		for i := range result.Columns {
			values[i] = query.FormatValue(row[i])
		}
		b.WriteString(strings.Join(values, ","))
		b.WriteByte('\n')
	}

	return b.String(), true
}
