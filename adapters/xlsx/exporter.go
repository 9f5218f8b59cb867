package xlsx

import (
	"context"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"arrowview/domain/report"
	"arrowview/internal"
	"arrowview/internal/errors"
)

const defaultSheet = "Sheet1"

// Exporter writes reports to an .xlsx workbook, one sheet per report
type Exporter struct {
	logger *internal.Logger
}

// NewExporter creates a workbook exporter
func NewExporter(logger *internal.Logger) *Exporter {
	return &Exporter{logger: logger}
}

// Export writes tables to path in order. Numeric text becomes numeric
// cells and "null" becomes an empty cell.
func (e *Exporter) Export(ctx context.Context, path string, tables []report.Table) error {
	if len(tables) == 0 {
		return errors.InvalidInput("nothing to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "failed to create header style")
	}

	used := make(map[string]int)
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := sheetName(string(t.Kind), used)
		if err := writeSheet(f, name, t, bold); err != nil {
			return errors.Wrapf(err, "failed to write sheet %s", name)
		}
		e.logger.Debug("[xlsx] sheet %s: %d rows", name, len(t.Rows))
	}

	if err := f.DeleteSheet(defaultSheet); err != nil {
		return errors.Wrap(err, "failed to drop default sheet")
	}
	if idx, err := f.GetSheetIndex(sheetName(string(tables[0].Kind), map[string]int{})); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.IOError(fmt.Sprintf("failed to save workbook %q", path), err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, t report.Table, headerStyle int) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}

	header := make([]interface{}, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return err
	}
	if len(t.Header) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.Header), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range t.Rows {
		cells := make([]interface{}, len(row))
		for c, v := range row {
			cells[c] = cellValue(v)
		}
		addr, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(name, addr, &cells); err != nil {
			return err
		}
	}
	return nil
}

func cellValue(s string) interface{} {
	if s == "null" {
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}

// sheetName returns kind, or kind_2, kind_3... when already taken
func sheetName(kind string, used map[string]int) string {
	used[kind]++
	if n := used[kind]; n > 1 {
		return fmt.Sprintf("%s_%d", kind, n)
	}
	return kind
}
