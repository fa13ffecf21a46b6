package dashboard

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/salescope/internal/query"
)

// maxDetailRows caps the drill-down result size.
const maxDetailRows = 50

// DetailKind names a canned drill-down query.
type DetailKind string

// Supported drill-down kinds.
const (
	DetailCustomers DetailKind = "customers"
	DetailProducts  DetailKind = "products"
	DetailOrders    DetailKind = "orders"
)

// detailTitles maps kinds to modal titles.
var detailTitles = map[DetailKind]string{
	DetailCustomers: "Customer Details",
	DetailProducts:  "Product Details",
	DetailOrders:    "Top Orders",
}

// ShowDetails opens the drill-down modal in a loading state and populates
// it with the canned query for kind, parameterized only by the current year
// filter. Column names come from the result set; an empty result shows zero
// columns rather than an error.
//
// Each invocation takes a fresh sequence number; a completion that is no
// longer the latest is discarded, so a slow early request can never
// overwrite a newer one.
func (s *Session) ShowDetails(ctx context.Context, kind DetailKind) error {
	sqlStr, err := detailQuery(kind, s.SelectedYear())
	if err != nil {
		return err
	}

	seq := s.detailSeq.Add(1)
	title := detailTitles[kind]

	s.mutate(func(sf *Surface) {
		sf.Modal = ModalState{Open: true, Loading: true, Title: title}
	})

	rows, qerr := s.db.Query(ctx, sqlStr)
	var result *query.Result
	if qerr == nil {
		result, qerr = query.Collect(rows, maxDetailRows)
	}

	s.mu.Lock()
	if seq != s.detailSeq.Load() {
		s.mu.Unlock()
		s.logger.Debug("discarding stale detail load", "kind", kind, "seq", seq)
		return nil
	}
	modal := ModalState{Open: true, Title: title}
	if qerr == nil && result.RowCount() > 0 {
		modal.Columns = result.Columns
		modal.Rows = result.Rows
	}
	s.surface.Modal = modal
	s.mu.Unlock()
	s.onChange()

	if qerr != nil {
		s.logger.Warn("detail load failed", "kind", kind, "error", qerr)
	}
	return nil
}

// CloseDetails dismisses the modal.
func (s *Session) CloseDetails() {
	s.mutate(func(sf *Surface) {
		sf.Modal = ModalState{}
	})
}

func detailQuery(kind DetailKind, year string) (string, error) {
	switch kind {
	case DetailCustomers:
		return fmt.Sprintf(`
			SELECT customer_name,
			       COUNT(*) AS orders,
			       COALESCE(SUM(sales), 0) AS sales,
			       COALESCE(SUM(profit), 0) AS profit
			FROM %s%s
			GROUP BY 1
			ORDER BY 3 DESC, 1 ASC
			LIMIT %d
		`, factTable, yearClause(year, ""), maxDetailRows), nil

	case DetailProducts:
		return fmt.Sprintf(`
			SELECT COALESCE(p.product_name, 'Unknown') AS product_name,
			       COALESCE(p.category, 'Unknown') AS category,
			       COALESCE(SUM(o.quantity), 0) AS quantity,
			       COALESCE(SUM(o.sales), 0) AS sales,
			       COALESCE(SUM(o.profit), 0) AS profit
			FROM %s o LEFT JOIN %s p ON o.product_id = p.product_id%s
			GROUP BY 1, 2
			ORDER BY 4 DESC, 1 ASC
			LIMIT %d
		`, factTable, dimTable, yearClause(year, "o"), maxDetailRows), nil

	case DetailOrders:
		return fmt.Sprintf(`
			SELECT order_id, order_date, customer_name, region, ship_mode,
			       sales, quantity, profit
			FROM %s%s
			ORDER BY sales DESC, order_id ASC
			LIMIT %d
		`, factTable, yearClause(year, ""), maxDetailRows), nil

	default:
		return "", fmt.Errorf("unknown detail kind %q", kind)
	}
}
