// Package preview builds the head and info views of a table.
package preview

import (
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"arrowview/domain/report"
	"arrowview/internal/errors"
)

// NullText is how a null cell is shown
const NullText = "null"

// Head returns the first n rows of tbl with a leading row-index column.
// Fewer rows are returned when the table is shorter.
func Head(tbl arrow.Table, n int) (report.Table, error) {
	if n < 0 {
		return report.Table{}, errors.InvalidInput("head row count must be non-negative")
	}

	schema := tbl.Schema()
	header := make([]string, 0, schema.NumFields()+1)
	header = append(header, "")
	for _, f := range schema.Fields() {
		header = append(header, f.Name)
	}

	limit := int(min(int64(n), tbl.NumRows()))
	rows := make([][]string, 0, limit)
	if limit == 0 {
		return report.Table{Kind: report.KindHead, Header: header, Rows: rows}, nil
	}

	tr := array.NewTableReader(tbl, int64(limit))
	defer tr.Release()
	for tr.Next() && len(rows) < limit {
		rec := tr.Record()
		for i := 0; i < int(rec.NumRows()) && len(rows) < limit; i++ {
			row := make([]string, 0, len(header))
			row = append(row, strconv.Itoa(len(rows)))
			for c := 0; c < int(rec.NumCols()); c++ {
				row = append(row, cellText(rec.Column(c), i))
			}
			rows = append(rows, row)
		}
	}
	return report.Table{Kind: report.KindHead, Header: header, Rows: rows}, nil
}

func cellText(arr arrow.Array, i int) string {
	if arr.IsNull(i) {
		return NullText
	}
	return arr.ValueStr(i)
}

// InfoHeader names the columns of the info view
var InfoHeader = []string{"#", "Field", "Non-Null Count", "Dtype"}

// Info lists every field with its non-null count and data type
func Info(tbl arrow.Table) report.Table {
	rows := make([][]string, 0, tbl.NumCols())
	for i, f := range tbl.Schema().Fields() {
		col := tbl.Column(i)
		rows = append(rows, []string{
			strconv.Itoa(i),
			f.Name,
			strconv.Itoa(col.Len() - col.NullN()),
			f.Type.String(),
		})
	}
	return report.Table{
		Kind:   report.KindInfo,
		Header: append([]string(nil), InfoHeader...),
		Rows:   rows,
	}
}
