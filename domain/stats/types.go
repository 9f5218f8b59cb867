package stats

import "fmt"

// StatisticKind names one row of the describe report
type StatisticKind int

const (
	Count StatisticKind = iota
	Mean
	Std
	Min
	P25
	P50
	P75
	Max
)

// kindInfo is the explicit lookup table for display label and grid row.
// Its order is the output row order.
var kindInfo = []struct {
	kind  StatisticKind
	label string
}{
	{Count, "count"},
	{Mean, "mean"},
	{Std, "std"},
	{Min, "min"},
	{P25, "25%"},
	{P50, "50%"},
	{P75, "75%"},
	{Max, "max"},
}

// NumKinds is the number of statistic rows in a report
const NumKinds = 8

// Kinds returns every statistic kind in display order
func Kinds() []StatisticKind {
	kinds := make([]StatisticKind, len(kindInfo))
	for i, info := range kindInfo {
		kinds[i] = info.kind
	}
	return kinds
}

// Row returns the grid row index of the kind
func (k StatisticKind) Row() int {
	for i, info := range kindInfo {
		if info.kind == k {
			return i
		}
	}
	panic(fmt.Sprintf("stats: unknown statistic kind %d", int(k)))
}

// Label returns the text shown in the first report column
func (k StatisticKind) Label() string {
	return kindInfo[k.Row()].label
}

func (k StatisticKind) String() string {
	return k.Label()
}

// QuantileKinds are the order statistics, in the order the quantile
// probabilities are requested.
var QuantileKinds = [5]StatisticKind{Min, P25, P50, P75, Max}

// DescriptiveRow holds the rendered statistics of one column
type DescriptiveRow struct {
	cells [NumKinds]string
	set   [NumKinds]bool
}

// Set stores the rendered value of one statistic
func (r *DescriptiveRow) Set(kind StatisticKind, value string) {
	row := kind.Row()
	r.cells[row] = value
	r.set[row] = true
}

// Get returns the rendered value of one statistic
func (r DescriptiveRow) Get(kind StatisticKind) string {
	return r.cells[kind.Row()]
}

// Complete reports whether every statistic has been set
func (r DescriptiveRow) Complete() bool {
	for _, ok := range r.set {
		if !ok {
			return false
		}
	}
	return true
}

// ReportGrid is the describe report: one row per statistic kind,
// one column per selected field.
type ReportGrid struct {
	Header []string
	cells  [NumKinds][]string
}

// NewReportGrid allocates an empty grid for the given field names
func NewReportGrid(header []string) *ReportGrid {
	g := &ReportGrid{Header: append([]string(nil), header...)}
	for i := range g.cells {
		g.cells[i] = make([]string, len(header))
	}
	return g
}

// NumColumns is the number of data columns
func (g *ReportGrid) NumColumns() int {
	return len(g.Header)
}

// SetColumn scatters one column's statistics into column col
func (g *ReportGrid) SetColumn(col int, row DescriptiveRow) error {
	if col < 0 || col >= len(g.Header) {
		return fmt.Errorf("stats: column %d out of range [0, %d)", col, len(g.Header))
	}
	if !row.Complete() {
		return fmt.Errorf("stats: incomplete statistics for column %q", g.Header[col])
	}
	for _, kind := range Kinds() {
		g.cells[kind.Row()][col] = row.Get(kind)
	}
	return nil
}

// Cell returns the rendered value for one statistic and column
func (g *ReportGrid) Cell(kind StatisticKind, col int) string {
	return g.cells[kind.Row()][col]
}

// Rows transposes the grid into display rows: label first, then the
// field cells in selection order.
func (g *ReportGrid) Rows() [][]string {
	rows := make([][]string, 0, NumKinds)
	for _, kind := range Kinds() {
		row := make([]string, 0, len(g.Header)+1)
		row = append(row, kind.Label())
		row = append(row, g.cells[kind.Row()]...)
		rows = append(rows, row)
	}
	return rows
}
