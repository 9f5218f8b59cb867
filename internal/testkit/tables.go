package testkit

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
)

// Null marks a null cell in the string-based fixture builders
const Null = "\x00null"

// BuildChunked builds a chunked column, one chunk per cell slice.
// Cells are parsed with the builder's AppendValueFromString.
func BuildChunked(mem memory.Allocator, dt arrow.DataType, chunks ...[]string) (*arrow.Chunked, error) {
	arrs := make([]arrow.Array, 0, len(chunks))
	defer func() {
		for _, a := range arrs {
			a.Release()
		}
	}()

	for _, cells := range chunks {
		b := array.NewBuilder(mem, dt)
		if err := appendCells(b, cells); err != nil {
			b.Release()
			return nil, err
		}
		arrs = append(arrs, b.NewArray())
		b.Release()
	}
	return arrow.NewChunked(dt, arrs), nil
}

// BuildRecord builds one record batch from row-major string cells
func BuildRecord(mem memory.Allocator, schema *arrow.Schema, rows [][]string) (arrow.Record, error) {
	rb := array.NewRecordBuilder(mem, schema)
	defer rb.Release()

	for r, row := range rows {
		if len(row) != schema.NumFields() {
			return nil, fmt.Errorf("row %d has %d cells, schema has %d fields", r, len(row), schema.NumFields())
		}
		for c, cell := range row {
			if err := appendCells(rb.Field(c), []string{cell}); err != nil {
				return nil, fmt.Errorf("row %d column %d: %w", r, c, err)
			}
		}
	}
	return rb.NewRecord(), nil
}

// BuildTable builds a table with one record batch per row group
func BuildTable(mem memory.Allocator, schema *arrow.Schema, batches ...[][]string) (arrow.Table, error) {
	recs := make([]arrow.Record, 0, len(batches))
	defer func() {
		for _, rec := range recs {
			rec.Release()
		}
	}()

	for _, rows := range batches {
		rec, err := BuildRecord(mem, schema, rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return array.NewTableFromRecords(schema, recs), nil
}

func appendCells(b array.Builder, cells []string) error {
	for _, cell := range cells {
		if cell == Null {
			b.AppendNull()
			continue
		}
		if err := b.AppendValueFromString(cell); err != nil {
			return err
		}
	}
	return nil
}

// ScoresSchema is the id/name/score schema used across tests
func ScoresSchema() *arrow.Schema {
	return arrow.NewSchema([]arrow.Field{
		{Name: "id", Type: arrow.PrimitiveTypes.Int64},
		{Name: "name", Type: arrow.BinaryTypes.String, Nullable: true},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)
}

// ScoresTable is (1,"a",10.0), (2,"b",NULL), (3,"c",30.0)
func ScoresTable(mem memory.Allocator) (arrow.Table, error) {
	return BuildTable(mem, ScoresSchema(), [][]string{
		{"1", "a", "10.0"},
		{"2", "b", Null},
		{"3", "c", "30.0"},
	})
}
