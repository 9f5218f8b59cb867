package excel

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/xuri/excelize/v2"

	"arrowview/internal"
)

// SheetReader reads one worksheet of an .xlsx workbook into an Arrow table
type SheetReader struct {
	config ReaderConfig
	mem    memory.Allocator
	logger *internal.Logger
}

// NewSheetReader creates a worksheet reader
func NewSheetReader(config ReaderConfig, mem memory.Allocator, logger *internal.Logger) *SheetReader {
	return &SheetReader{config: config, mem: mem, logger: logger}
}

// ReadTable reads the configured sheet. The caller releases the table.
func (r *SheetReader) ReadTable(src io.Reader) (arrow.Table, error) {
	data, err := r.ReadData(src)
	if err != nil {
		return nil, err
	}
	return r.buildTable(data)
}

// ReadData reads the configured sheet as trimmed text
func (r *SheetReader) ReadData(src io.Reader) (*SheetData, error) {
	startTime := time.Now()
	f, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheet, err)
	}
	r.logger.Debug("[excel] sheet %s read in %.2fms (%d rows)",
		sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s must have a header row", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	data := &SheetData{Sheet: sheet, Headers: headers, Rows: make([][]string, 0, len(rows)-1)}
	for _, row := range rows[1:] {
		cells := make([]string, len(headers))
		for j := 0; j < len(row) && j < len(headers); j++ {
			cells[j] = strings.TrimSpace(row[j])
		}
		data.Rows = append(data.Rows, cells)
	}
	return data, nil
}

// InferColumnTypes picks int64, float64, boolean or string per column from
// the non-null cells. A column without values is string.
func (r *SheetReader) InferColumnTypes(data *SheetData) []arrow.DataType {
	types := make([]arrow.DataType, len(data.Headers))
	for c := range data.Headers {
		isInt, isFloat, isBool, seen := true, true, true, false
		for _, row := range data.Rows {
			v := row[c]
			if r.isNull(v) {
				continue
			}
			seen = true
			if isInt {
				_, err := strconv.ParseInt(v, 10, 64)
				isInt = err == nil
			}
			if isFloat {
				_, err := strconv.ParseFloat(v, 64)
				isFloat = err == nil
			}
			if isBool {
				isBool = strings.EqualFold(v, "true") || strings.EqualFold(v, "false")
			}
		}

		switch {
		case !seen:
			types[c] = arrow.BinaryTypes.String
		case isInt:
			types[c] = arrow.PrimitiveTypes.Int64
		case isFloat:
			types[c] = arrow.PrimitiveTypes.Float64
		case isBool:
			types[c] = arrow.FixedWidthTypes.Boolean
		default:
			types[c] = arrow.BinaryTypes.String
		}
	}
	return types
}

func (r *SheetReader) isNull(v string) bool {
	return slices.Contains(r.config.NullValues, v)
}

func (r *SheetReader) buildTable(data *SheetData) (arrow.Table, error) {
	types := r.InferColumnTypes(data)
	fields := make([]arrow.Field, len(data.Headers))
	for i, h := range data.Headers {
		if h == "" {
			h = fmt.Sprintf("column_%d", i)
		}
		fields[i] = arrow.Field{Name: h, Type: types[i], Nullable: true}
	}
	schema := arrow.NewSchema(fields, nil)

	rb := array.NewRecordBuilder(r.mem, schema)
	defer rb.Release()
	for rowIdx, row := range data.Rows {
		for c, v := range row {
			b := rb.Field(c)
			if r.isNull(v) {
				b.AppendNull()
				continue
			}
			if types[c].ID() == arrow.BOOL {
				v = strings.ToLower(v)
			}
			if err := b.AppendValueFromString(v); err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", rowIdx+2, fields[c].Name, err)
			}
		}
	}
	rec := rb.NewRecord()
	defer rec.Release()

	r.logger.Debug("[excel] sheet %s: %d columns, %d rows", data.Sheet, len(fields), len(data.Rows))
	return array.NewTableFromRecords(schema, []arrow.Record{rec}), nil
}
