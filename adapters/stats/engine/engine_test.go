package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrowview/domain/core"
	domainstats "arrowview/domain/stats"
	"arrowview/internal/testkit"
)

var quartiles = []float64{0, 0.25, 0.5, 0.75, 1}

func chunked(t *testing.T, mem memory.Allocator, dt arrow.DataType, chunks ...[]string) *arrow.Chunked {
	t.Helper()
	col, err := testkit.BuildChunked(mem, dt, chunks...)
	require.NoError(t, err)
	t.Cleanup(col.Release)
	return col
}

func values(scalars []domainstats.Scalar) []float64 {
	out := make([]float64, len(scalars))
	for i, s := range scalars {
		out[i] = s.Value
	}
	return out
}

func TestMeanAndStddevSkipNullsAcrossChunks(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Float64,
		[]string{"10", testkit.Null}, []string{"30"})
	e := NewStatsEngine(Linear)

	mean, err := e.Mean(col)
	require.NoError(t, err)
	assert.Equal(t, domainstats.NewScalar(20), mean)

	std, err := e.Stddev(col)
	require.NoError(t, err)
	assert.Equal(t, domainstats.NewScalar(10), std, "population standard deviation")
}

func TestEmptyColumnYieldsNulls(t *testing.T) {
	mem := memory.NewGoAllocator()
	e := NewStatsEngine(Linear)

	for name, col := range map[string]*arrow.Chunked{
		"no rows":  chunked(t, mem, arrow.PrimitiveTypes.Int64),
		"all null": chunked(t, mem, arrow.PrimitiveTypes.Int64, []string{testkit.Null, testkit.Null}),
	} {
		t.Run(name, func(t *testing.T) {
			mean, err := e.Mean(col)
			require.NoError(t, err)
			assert.False(t, mean.Valid)

			std, err := e.Stddev(col)
			require.NoError(t, err)
			assert.False(t, std.Valid)

			qs, err := e.Quantile(col, quartiles)
			require.NoError(t, err)
			require.Len(t, qs, 5)
			for _, q := range qs {
				assert.Equal(t, "null", q.String())
			}
		})
	}
}

func TestQuantileLinear(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Int32,
		[]string{"4", "1"}, []string{testkit.Null, "3", "2"})

	qs, err := NewStatsEngine(Linear).Quantile(col, quartiles)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 1.75, 2.5, 3.25, 4}, values(qs), 1e-12)
}

func TestQuantileNearest(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Int32, []string{"4", "1", "3", "2"})

	qs, err := NewStatsEngine(Nearest).Quantile(col, quartiles)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 1, 2, 3, 4}, values(qs))
}

func TestQuantileSingleValue(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Float64, []string{"7.5"})

	for _, interp := range []Interpolation{Linear, Nearest} {
		qs, err := NewStatsEngine(interp).Quantile(col, quartiles)
		require.NoError(t, err)
		assert.Equal(t, []float64{7.5, 7.5, 7.5, 7.5, 7.5}, values(qs), interp.String())
	}
}

func TestQuantileIgnoresNaN(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Float64, []string{"NaN", "2", "4"})

	qs, err := NewStatsEngine(Linear).Quantile(col, []float64{0, 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 4}, values(qs))
}

func TestQuantileRejectsBadProbability(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.PrimitiveTypes.Float64, []string{"1"})

	_, err := NewStatsEngine(Linear).Quantile(col, []float64{0.5, 1.5})
	assert.Error(t, err)
	_, err = NewStatsEngine(Linear).Quantile(col, []float64{math.NaN()})
	assert.Error(t, err)
}

func TestAllNumericTypesAggregate(t *testing.T) {
	mem := memory.NewGoAllocator()
	types := []arrow.DataType{
		arrow.PrimitiveTypes.Int8, arrow.PrimitiveTypes.Int16,
		arrow.PrimitiveTypes.Int32, arrow.PrimitiveTypes.Int64,
		arrow.PrimitiveTypes.Uint8, arrow.PrimitiveTypes.Uint16,
		arrow.PrimitiveTypes.Uint32, arrow.PrimitiveTypes.Uint64,
		arrow.FixedWidthTypes.Float16, arrow.PrimitiveTypes.Float32,
		arrow.PrimitiveTypes.Float64,
	}
	e := NewStatsEngine(Linear)
	for _, dt := range types {
		t.Run(dt.String(), func(t *testing.T) {
			col := chunked(t, mem, dt, []string{"1", "2"}, []string{testkit.Null, "6"})
			mean, err := e.Mean(col)
			require.NoError(t, err)
			assert.InDelta(t, 3.0, mean.Value, 1e-9)
		})
	}
}

func TestDecimalsAreScaled(t *testing.T) {
	mem := memory.NewGoAllocator()
	types := []arrow.DataType{
		&arrow.Decimal32Type{Precision: 9, Scale: 2},
		&arrow.Decimal64Type{Precision: 18, Scale: 2},
		&arrow.Decimal128Type{Precision: 20, Scale: 2},
		&arrow.Decimal256Type{Precision: 40, Scale: 2},
	}
	e := NewStatsEngine(Linear)
	for _, dt := range types {
		t.Run(dt.String(), func(t *testing.T) {
			col := chunked(t, mem, dt, []string{"1.25", testkit.Null, "3.75"})
			data, err := Float64Values(col)
			require.NoError(t, err)
			assert.Equal(t, []float64{1.25, 3.75}, data)

			mean, err := e.Mean(col)
			require.NoError(t, err)
			assert.Equal(t, 2.5, mean.Value)
		})
	}
}

func TestNarrowDecimalsKeepSignAndScale(t *testing.T) {
	mem := memory.NewGoAllocator()
	for _, dt := range []arrow.DataType{
		&arrow.Decimal32Type{Precision: 7, Scale: 3},
		&arrow.Decimal64Type{Precision: 15, Scale: 3},
	} {
		t.Run(dt.String(), func(t *testing.T) {
			col := chunked(t, mem, dt, []string{"-0.125", "4.5"}, []string{"0"})
			data, err := Float64Values(col)
			require.NoError(t, err)
			assert.Equal(t, []float64{-0.125, 4.5, 0}, data)
		})
	}
}

func TestNonNumericColumnFails(t *testing.T) {
	mem := memory.NewGoAllocator()
	col := chunked(t, mem, arrow.BinaryTypes.String, []string{"a"})

	_, err := NewStatsEngine(Linear).Mean(col)
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnsupportedType))

	_, err = NewStatsEngine(Linear).Quantile(col, quartiles)
	assert.True(t, errors.Is(err, core.ErrUnsupportedType))
}

func TestRound(t *testing.T) {
	e := NewStatsEngine(Linear)
	tests := []struct {
		in       domainstats.Scalar
		expected string
	}{
		{domainstats.NewScalar(2.0004), "2"},
		{domainstats.NewScalar(2.0006), "2.001"},
		{domainstats.NewScalar(-1.23456), "-1.235"},
		{domainstats.NewScalar(1.0 / 3.0), "0.333"},
		{domainstats.NewScalar(-0.0001), "0"},
		{domainstats.NewScalar(2.0625), "2.062"},
		{domainstats.NewScalar(0.0625), "0.062"},
		{domainstats.NewScalar(1.5625), "1.562"},
		{domainstats.NewScalar(2.0635), "2.064"},
		{domainstats.NewScalar(-2.0625), "-2.062"},
		{domainstats.NewScalar(33.0 / 16.0), "2.062"},
		{domainstats.NullScalar, "null"},
		{domainstats.NewScalar(math.NaN()), "nan"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, e.Round(tt.in, 3).String())
	}
}

func TestParseInterpolation(t *testing.T) {
	interp, err := ParseInterpolation("Nearest")
	require.NoError(t, err)
	assert.Equal(t, Nearest, interp)

	interp, err = ParseInterpolation("linear")
	require.NoError(t, err)
	assert.Equal(t, Linear, interp)

	_, err = ParseInterpolation("midpoint")
	assert.Error(t, err)
}
