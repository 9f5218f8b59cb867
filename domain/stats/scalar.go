package stats

import (
	"math"
	"strconv"
)

// Scalar is a nullable numeric aggregation result
type Scalar struct {
	Value float64
	Valid bool
}

// NullScalar is the result of aggregating zero values
var NullScalar = Scalar{}

// NewScalar wraps a valid value
func NewScalar(v float64) Scalar {
	return Scalar{Value: v, Valid: true}
}

// String renders the canonical text form: "null" for missing results,
// otherwise the shortest decimal representation. Non-finite values print
// as nan, inf and -inf.
func (s Scalar) String() string {
	if !s.Valid {
		return "null"
	}
	v := s.Value
	if v == 0 {
		// drop the sign of negative zero
		v = 0
	}
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
