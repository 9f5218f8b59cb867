package engine

import (
	"fmt"
	"math/big"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	arrowdecimal "github.com/apache/arrow-go/v18/arrow/decimal"
	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/apache/arrow-go/v18/arrow/decimal256"
	"github.com/apache/arrow-go/v18/arrow/float16"
	"github.com/shopspring/decimal"

	"arrowview/domain/core"
)

// valueArray is the read side shared by every primitive Arrow array
type valueArray[T any] interface {
	Len() int
	IsNull(i int) bool
	Value(i int) T
}

type bigIntValue interface {
	BigInt() *big.Int
}

// Float64Values flattens the non-null values of a chunked numeric column.
// Decimal values are scaled exactly before the final float conversion.
func Float64Values(col *arrow.Chunked) ([]float64, error) {
	out := make([]float64, 0, col.Len()-col.NullN())
	for _, chunk := range col.Chunks() {
		var err error
		out, err = appendChunk(out, chunk)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func appendChunk(dst []float64, chunk arrow.Array) ([]float64, error) {
	switch arr := chunk.(type) {
	case *array.Int8:
		return appendConverted(dst, arr, func(v int8) float64 { return float64(v) }), nil
	case *array.Int16:
		return appendConverted(dst, arr, func(v int16) float64 { return float64(v) }), nil
	case *array.Int32:
		return appendConverted(dst, arr, func(v int32) float64 { return float64(v) }), nil
	case *array.Int64:
		return appendConverted(dst, arr, func(v int64) float64 { return float64(v) }), nil
	case *array.Uint8:
		return appendConverted(dst, arr, func(v uint8) float64 { return float64(v) }), nil
	case *array.Uint16:
		return appendConverted(dst, arr, func(v uint16) float64 { return float64(v) }), nil
	case *array.Uint32:
		return appendConverted(dst, arr, func(v uint32) float64 { return float64(v) }), nil
	case *array.Uint64:
		return appendConverted(dst, arr, func(v uint64) float64 { return float64(v) }), nil
	case *array.Float16:
		return appendConverted(dst, arr, func(v float16.Num) float64 { return float64(v.Float32()) }), nil
	case *array.Float32:
		return appendConverted(dst, arr, func(v float32) float64 { return float64(v) }), nil
	case *array.Float64:
		return appendConverted(dst, arr, func(v float64) float64 { return v }), nil
	case *array.Decimal32:
		scale := decimalScale(arr.DataType())
		return appendConverted(dst, arr, func(v arrowdecimal.Decimal32) float64 { return scaledInt(int64(v), scale) }), nil
	case *array.Decimal64:
		scale := decimalScale(arr.DataType())
		return appendConverted(dst, arr, func(v arrowdecimal.Decimal64) float64 { return scaledInt(int64(v), scale) }), nil
	case *array.Decimal128:
		scale := decimalScale(arr.DataType())
		return appendConverted(dst, arr, func(v decimal128.Num) float64 { return scaled(v, scale) }), nil
	case *array.Decimal256:
		scale := decimalScale(arr.DataType())
		return appendConverted(dst, arr, func(v decimal256.Num) float64 { return scaled(v, scale) }), nil
	}
	return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedType, chunk.DataType())
}

func appendConverted[T any](dst []float64, arr valueArray[T], conv func(T) float64) []float64 {
	for i := 0; i < arr.Len(); i++ {
		if arr.IsNull(i) {
			continue
		}
		dst = append(dst, conv(arr.Value(i)))
	}
	return dst
}

// scaledInt converts the unscaled value of a 32 or 64 bit decimal
func scaledInt(v int64, scale int32) float64 {
	f, _ := decimal.New(v, -scale).Float64()
	return f
}

// scaled converts an unscaled 128 or 256 bit decimal to its float value
func scaled(v bigIntValue, scale int32) float64 {
	f, _ := decimal.NewFromBigInt(v.BigInt(), -scale).Float64()
	return f
}

func decimalScale(dt arrow.DataType) int32 {
	if d, ok := dt.(arrow.DecimalType); ok {
		return d.GetScale()
	}
	return 0
}
