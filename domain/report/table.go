package report

// Kind identifies which view produced a table
type Kind string

const (
	KindHead     Kind = "head"
	KindInfo     Kind = "info"
	KindDescribe Kind = "describe"
)

// Table is a rendered-text report ready for output.
// Header and every row have the same number of cells.
type Table struct {
	Kind   Kind
	Header []string
	Rows   [][]string
}

// NumColumns counts the header cells
func (t Table) NumColumns() int {
	return len(t.Header)
}
