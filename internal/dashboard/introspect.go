package dashboard

import (
	"context"
	"fmt"
)

// yearExpr extracts the four-digit year from the slash-delimited
// MM/DD/YYYY order date. Portable across the sqlite and duckdb dialects.
const yearExpr = "substr(order_date, length(order_date) - 3, 4)"

// refreshSchema re-reads the table list and the selectable years. Run on
// readiness and after imports; the years list is filter-independent, so a
// mere filter change does not re-run it. All failures here are recoverable:
// they log and leave the previous values in place.
func (s *Session) refreshSchema(ctx context.Context) {
	tables, err := s.db.ListTables(ctx)
	if err != nil {
		s.logger.Warn("failed to list tables", "error", err)
	} else {
		s.mutate(func(sf *Surface) {
			sf.Tables = tables
		})
	}

	years, err := s.availableYears(ctx)
	if err != nil {
		s.logger.Warn("failed to load years", "error", err)
		return
	}
	if years == nil {
		// Fact table absent: keep the previous year list.
		return
	}

	s.mutate(func(sf *Surface) {
		sf.Years = years
	})
}

// availableYears returns the distinct years present in the order dates,
// sorted descending and prefixed with the "All" sentinel. Returns nil with
// no error when the fact table does not exist.
func (s *Session) availableYears(ctx context.Context) ([]string, error) {
	exists, err := s.db.TableExists(ctx, factTable)
	if err != nil {
		return nil, fmt.Errorf("failed to probe %s table: %w", factTable, err)
	}
	if !exists {
		return nil, nil
	}

	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT DISTINCT %s AS year
		FROM %s
		WHERE order_date IS NOT NULL AND length(order_date) >= 8
		ORDER BY year DESC
	`, yearExpr, factTable))
	if err != nil {
		return nil, fmt.Errorf("failed to query years: %w", err)
	}
	defer func() { _ = rows.Close() }()

	years := []string{YearAll}
	for rows.Next() {
		var year string
		if err := rows.Scan(&year); err != nil {
			return nil, fmt.Errorf("failed to scan year: %w", err)
		}
		years = append(years, year)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating years: %w", err)
	}

	return years, nil
}
