package dashboard

import (
	"context"
	"fmt"
	"regexp"
	"time"
)

// monthExpr derives the sortable "YYYY-MM" key from the slash-delimited
// order date by splitting on '/' and zero-padding the month. Portable
// across the sqlite and duckdb dialects.
const monthExpr = yearExpr + ` || '-' ||
	CASE WHEN instr(order_date, '/') = 2
	     THEN '0' || substr(order_date, 1, 1)
	     ELSE substr(order_date, 1, 2)
	END`

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// refreshMetrics runs the aggregate battery for the current year filter and
// replaces the snapshot wholesale. If the fact table is absent, the prior
// snapshot is left untouched. Any query failure aborts the whole refresh:
// it is logged and the prior snapshot stays stale. The dashboard is
// best-effort; operation-level errors belong to the console and import
// surfaces, not here.
//
// A refresh generation counter guards against an older in-flight battery
// finishing after a newer one: only the most recently requested refresh may
// publish its snapshot.
func (s *Session) refreshMetrics(ctx context.Context) {
	if !s.Ready() {
		return
	}

	seq := s.refreshSeq.Add(1)
	year := s.SelectedYear()

	exists, err := s.db.TableExists(ctx, factTable)
	if err != nil || !exists {
		if err != nil {
			s.logger.Warn("fact table probe failed", "error", err)
		}
		return
	}

	s.mutate(func(sf *Surface) {
		sf.Loading = true
	})

	start := time.Now()
	snap, err := s.buildSnapshot(ctx, year)

	s.mu.Lock()
	stale := seq != s.refreshSeq.Load()
	if !stale {
		if err == nil {
			s.surface.Snapshot = snap
		}
		// A stale completion must not touch the loading flag either;
		// the newer in-flight refresh owns it now.
		s.surface.Loading = false
	}
	s.mu.Unlock()
	s.onChange()

	if err != nil {
		s.logger.Error("metrics refresh failed, keeping previous snapshot",
			"year", year, "error", err)
		return
	}
	if stale {
		s.logger.Debug("discarding stale metrics refresh", "seq", seq)
		return
	}

	s.logger.Debug("metrics refreshed",
		"year", year, "orders", snap.TotalOrders, "elapsed", time.Since(start))
}

// yearClause returns the WHERE fragment for the current filter, or an empty
// string for the "All" sentinel. The alias qualifies the order_date column
// in join queries.
func yearClause(year, alias string) string {
	if year == "" || year == YearAll || !yearPattern.MatchString(year) {
		return ""
	}
	col := "order_date"
	if alias != "" {
		col = alias + "." + col
	}
	return fmt.Sprintf(" WHERE substr(%s, length(%s) - 3, 4) = '%s'", col, col, year)
}

// buildSnapshot issues the fixed battery of aggregate queries in order.
// The first failure aborts and discards everything collected so far.
func (s *Session) buildSnapshot(ctx context.Context, year string) (*Snapshot, error) {
	snap := &Snapshot{}

	if err := s.queryTotals(ctx, year, snap); err != nil {
		return nil, fmt.Errorf("totals: %w", err)
	}

	var err error

	// Category, sub-category and product groupings live on the product
	// dimension; the left join keeps orders with unmatched product IDs
	// contributing to the aggregates.
	snap.ByCategory, err = s.queryBreakdown(ctx, fmt.Sprintf(`
		SELECT COALESCE(p.category, 'Unknown') AS name,
		       COALESCE(SUM(o.sales), 0) AS sales,
		       COALESCE(SUM(o.profit), 0) AS profit
		FROM %s o LEFT JOIN %s p ON o.product_id = p.product_id%s
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
	`, factTable, dimTable, yearClause(year, "o")))
	if err != nil {
		return nil, fmt.Errorf("by category: %w", err)
	}

	snap.ByRegion, err = s.queryBreakdown(ctx, fmt.Sprintf(`
		SELECT region AS name,
		       COALESCE(SUM(sales), 0) AS sales,
		       COALESCE(SUM(profit), 0) AS profit
		FROM %s%s
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
	`, factTable, yearClause(year, "")))
	if err != nil {
		return nil, fmt.Errorf("by region: %w", err)
	}

	snap.BySubCategory, err = s.queryBreakdown(ctx, fmt.Sprintf(`
		SELECT COALESCE(p.sub_category, 'Unknown') AS name,
		       COALESCE(SUM(o.sales), 0) AS sales,
		       COALESCE(SUM(o.profit), 0) AS profit
		FROM %s o LEFT JOIN %s p ON o.product_id = p.product_id%s
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
		LIMIT 10
	`, factTable, dimTable, yearClause(year, "o")))
	if err != nil {
		return nil, fmt.Errorf("by sub-category: %w", err)
	}

	snap.MonthlyTrend, err = s.queryTrend(ctx, year)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}

	snap.TopCustomers, err = s.queryOrderCounted(ctx, fmt.Sprintf(`
		SELECT customer_name AS name,
		       COALESCE(SUM(sales), 0) AS sales,
		       COALESCE(SUM(profit), 0) AS profit,
		       COUNT(*) AS orders
		FROM %s%s
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
		LIMIT 10
	`, factTable, yearClause(year, "")))
	if err != nil {
		return nil, fmt.Errorf("top customers: %w", err)
	}

	snap.TopProducts, err = s.queryBreakdown(ctx, fmt.Sprintf(`
		SELECT COALESCE(p.product_name, 'Unknown') AS name,
		       COALESCE(SUM(o.sales), 0) AS sales,
		       COALESCE(SUM(o.profit), 0) AS profit
		FROM %s o LEFT JOIN %s p ON o.product_id = p.product_id%s
		GROUP BY 1
		ORDER BY 2 DESC, 1 ASC
		LIMIT 10
	`, factTable, dimTable, yearClause(year, "o")))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	snap.ByShipMode, err = s.queryOrderCounted(ctx, fmt.Sprintf(`
		SELECT ship_mode AS name,
		       COALESCE(SUM(sales), 0) AS sales,
		       COALESCE(SUM(profit), 0) AS profit,
		       COUNT(*) AS orders
		FROM %s%s
		GROUP BY 1
		ORDER BY 4 DESC, 1 ASC
	`, factTable, yearClause(year, "")))
	if err != nil {
		return nil, fmt.Errorf("by ship mode: %w", err)
	}

	return snap, nil
}

func (s *Session) queryTotals(ctx context.Context, year string, snap *Snapshot) error {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT COALESCE(SUM(sales), 0),
		       COALESCE(SUM(profit), 0),
		       COUNT(*)
		FROM %s%s
	`, factTable, yearClause(year, "")))
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	if !rows.Next() {
		return rows.Err()
	}
	if err := rows.Scan(&snap.TotalSales, &snap.TotalProfit, &snap.TotalOrders); err != nil {
		return err
	}
	if err := rows.Err(); err != nil {
		return err
	}

	// Zero denominators yield exactly 0, never NaN or Inf.
	if snap.TotalSales != 0 {
		snap.ProfitMargin = snap.TotalProfit / snap.TotalSales * 100
	}
	if snap.TotalOrders != 0 {
		snap.AvgOrderValue = snap.TotalSales / float64(snap.TotalOrders)
	}

	return nil
}

// queryBreakdown collects (name, sales, profit) grouped rows.
func (s *Session) queryBreakdown(ctx context.Context, sqlStr string) ([]MetricRow, error) {
	rows, err := s.db.Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []MetricRow
	for rows.Next() {
		var row MetricRow
		if err := rows.Scan(&row.Name, &row.Sales, &row.Profit); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// queryOrderCounted collects (name, sales, profit, orders) grouped rows.
func (s *Session) queryOrderCounted(ctx context.Context, sqlStr string) ([]MetricRow, error) {
	rows, err := s.db.Query(ctx, sqlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []MetricRow
	for rows.Next() {
		var row MetricRow
		if err := rows.Scan(&row.Name, &row.Sales, &row.Profit, &row.Orders); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *Session) queryTrend(ctx context.Context, year string) ([]TrendPoint, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT %s AS month,
		       COALESCE(SUM(sales), 0) AS sales,
		       COALESCE(SUM(profit), 0) AS profit
		FROM %s%s
		GROUP BY 1
		ORDER BY 1 ASC
	`, monthExpr, factTable, yearClause(year, "")))
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []TrendPoint
	for rows.Next() {
		var p TrendPoint
		if err := rows.Scan(&p.Month, &p.Sales, &p.Profit); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
