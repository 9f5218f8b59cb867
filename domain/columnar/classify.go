// Package columnar holds the schema-level rules shared by every view: which
// Arrow types count as numeric and how numeric fields map back to their
// source columns.
package columnar

import "github.com/apache/arrow-go/v18/arrow"

// numericTypes lists every type tag eligible for descriptive statistics
var numericTypes = map[arrow.Type]bool{
	arrow.INT8:       true,
	arrow.INT16:      true,
	arrow.INT32:      true,
	arrow.INT64:      true,
	arrow.UINT8:      true,
	arrow.UINT16:     true,
	arrow.UINT32:     true,
	arrow.UINT64:     true,
	arrow.FLOAT16:    true,
	arrow.FLOAT32:    true,
	arrow.FLOAT64:    true,
	arrow.DECIMAL32:  true,
	arrow.DECIMAL64:  true,
	arrow.DECIMAL128: true,
	arrow.DECIMAL256: true,
}

// IsNumeric reports whether a column of the given type can be described.
// Unknown tags are not numeric.
func IsNumeric(id arrow.Type) bool {
	return numericTypes[id]
}

