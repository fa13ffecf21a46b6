package dashboard

import "github.com/leapstack-labs/salescope/internal/query"

// State is the session lifecycle state.
type State string

// Session lifecycle states.
const (
	StateUninitialized State = "uninitialized"
	StateBootstrapping State = "bootstrapping"
	StateReady         State = "ready"
)

// YearAll is the sentinel year meaning no filter is applied.
const YearAll = "All"

// MetricRow is one row of a grouped aggregate collection.
type MetricRow struct {
	Name   string  `json:"name"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Orders int64   `json:"orders,omitempty"`
}

// TrendPoint is one month of the sales trend. Month is a "YYYY-MM" key;
// sort key and display key are the same string.
type TrendPoint struct {
	Month  string  `json:"month"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
}

// Snapshot is the complete bundle of computed KPIs and chart-ready
// collections for the current filter. It is replaced wholesale on every
// refresh and never patched incrementally.
type Snapshot struct {
	TotalSales    float64 `json:"totalSales"`
	TotalProfit   float64 `json:"totalProfit"`
	TotalOrders   int64   `json:"totalOrders"`
	ProfitMargin  float64 `json:"profitMargin"`
	AvgOrderValue float64 `json:"avgOrderValue"`

	ByCategory    []MetricRow  `json:"byCategory"`
	ByRegion      []MetricRow  `json:"byRegion"`
	BySubCategory []MetricRow  `json:"bySubCategory"`
	MonthlyTrend  []TrendPoint `json:"monthlyTrend"`
	TopCustomers  []MetricRow  `json:"topCustomers"`
	TopProducts   []MetricRow  `json:"topProducts"`
	ByShipMode    []MetricRow  `json:"byShipMode"`
}

// ConsoleState holds the ad-hoc query console state. Result and Error are
// mutually exclusive; each run replaces the whole struct.
type ConsoleState struct {
	SQL       string        `json:"sql"`
	Result    *query.Result `json:"result,omitempty"`
	Error     string        `json:"error,omitempty"`
	ElapsedMS int64         `json:"elapsedMs"`
}

// ModalState holds the drill-down modal state, replaced wholesale per
// invocation and independent of the main snapshot.
type ModalState struct {
	Open    bool     `json:"open"`
	Loading bool     `json:"loading"`
	Title   string   `json:"title"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Surface is the complete UI-facing state exposed by the session. The view
// layer reads it as a whole; every mutation triggers a change notification.
type Surface struct {
	State   State  `json:"state"`
	Ready   bool   `json:"ready"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`

	Tables       []string `json:"tables"`
	Years        []string `json:"years"`
	SelectedYear string   `json:"selectedYear"`

	Snapshot *Snapshot `json:"snapshot,omitempty"`

	Console      ConsoleState `json:"console"`
	ImportStatus string       `json:"importStatus,omitempty"`
	Modal        ModalState   `json:"modal"`
}
