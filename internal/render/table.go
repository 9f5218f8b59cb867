// Package render writes reports as text tables with lipgloss.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"arrowview/domain/report"
)

// Renderer draws report tables sized to a fixed terminal width
type Renderer struct {
	out           io.Writer
	terminalWidth int
	lg            *lipgloss.Renderer
}

// NewRenderer creates a renderer writing to out. Colour and bold are only
// emitted when out is a terminal.
func NewRenderer(out io.Writer, terminalWidth int) *Renderer {
	return &Renderer{
		out:           out,
		terminalWidth: terminalWidth,
		lg:            lipgloss.NewRenderer(out),
	}
}

// Render writes one table followed by a newline
func (r *Renderer) Render(t report.Table) error {
	var s string
	switch t.Kind {
	case report.KindInfo:
		s = r.info(t)
	case report.KindDescribe:
		s = r.grid(t, DescribeLabelWidth)
	case report.KindHead:
		s = r.grid(t, indexWidth(len(t.Rows)))
	default:
		return fmt.Errorf("render: unknown report kind %q", t.Kind)
	}
	_, err := fmt.Fprintln(r.out, s)
	return err
}

// RenderAll writes tables in order separated by a blank line
func (r *Renderer) RenderAll(tables []report.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := fmt.Fprintln(r.out); err != nil {
				return err
			}
		}
		if err := r.Render(t); err != nil {
			return err
		}
	}
	return nil
}

// grid draws a bordered table with a fixed first column and equal data columns
func (r *Renderer) grid(t report.Table, firstWidth int) string {
	dataWidth := ColumnWidth(r.terminalWidth, t.NumColumns()-1, firstWidth)

	cell := r.lg.NewStyle().Padding(0, 1)
	header := cell.Bold(true)
	label := cell.Align(lipgloss.Left)
	value := cell.Align(lipgloss.Right)

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			var s lipgloss.Style
			switch {
			case row == table.HeaderRow:
				s = header
			case col == 0:
				s = label
			default:
				s = value
			}
			if col == 0 {
				return s.Width(firstWidth)
			}
			return s.Width(dataWidth)
		}).
		String()
}

// info draws the borderless field listing with a rule under the header
func (r *Renderer) info(t report.Table) string {
	cell := r.lg.NewStyle().PaddingRight(2)
	header := cell.Bold(true)

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderColumn(false).
		BorderHeader(true).
		Headers(t.Header...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

// indexWidth fits the largest row index plus padding
func indexWidth(rows int) int {
	return len(strconv.Itoa(max(rows-1, 0))) + 2
}
