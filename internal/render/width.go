package render

// DescribeLabelWidth fits the longest statistic label plus padding
const DescribeLabelWidth = 7

// ColumnWidth splits what is left of the terminal after the first column
// and the n+1 column separators evenly over n data columns. The result is
// never below 1; with no data columns it is 0.
func ColumnWidth(terminalWidth, nColumns, firstColWidth int) int {
	if nColumns <= 0 {
		return 0
	}
	w := (terminalWidth - firstColWidth - nColumns - 1) / nColumns
	return max(w, 1)
}
