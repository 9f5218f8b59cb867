package excel

// SheetData is one worksheet as text: a header row and data rows padded
// to the header width.
type SheetData struct {
	Sheet   string
	Headers []string
	Rows    [][]string
}
