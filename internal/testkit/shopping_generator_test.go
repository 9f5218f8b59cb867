package testkit

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoppingGeneratorShape(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	cfg := DefaultShoppingConfig()
	cfg.Rows = 600
	cfg.BatchSize = 250

	tbl, err := NewShoppingDataGenerator(cfg).GenerateTable(mem)
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, int64(600), tbl.NumRows())
	assert.Equal(t, int64(8), tbl.NumCols())
	assert.Len(t, tbl.Column(0).Data().Chunks(), 3, "600 rows in batches of 250")

	discounts := tbl.Column(4)
	assert.Greater(t, discounts.NullN(), 0)
	assert.Less(t, discounts.NullN(), 600)
}

func TestShoppingGeneratorDeterministic(t *testing.T) {
	mem := memory.NewGoAllocator()
	cfg := DefaultShoppingConfig()
	cfg.Rows = 50

	a, err := NewShoppingDataGenerator(cfg).GenerateTable(mem)
	require.NoError(t, err)
	defer a.Release()
	b, err := NewShoppingDataGenerator(cfg).GenerateTable(mem)
	require.NoError(t, err)
	defer b.Release()

	assert.True(t, array.TableEqual(a, b))
}

func TestShoppingGeneratorEmpty(t *testing.T) {
	mem := memory.NewGoAllocator()
	cfg := DefaultShoppingConfig()
	cfg.Rows = 0

	tbl, err := NewShoppingDataGenerator(cfg).GenerateTable(mem)
	require.NoError(t, err)
	defer tbl.Release()
	assert.Equal(t, int64(0), tbl.NumRows())
	assert.True(t, tbl.Schema().Equal(OrdersSchema()))
}

func TestShoppingGeneratorRejectsBadConfig(t *testing.T) {
	cfg := DefaultShoppingConfig()
	cfg.BatchSize = 0
	_, err := NewShoppingDataGenerator(cfg).GenerateTable(memory.NewGoAllocator())
	assert.Error(t, err)
}

func TestBuildTableFromStrings(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	tbl, err := ScoresTable(mem)
	require.NoError(t, err)
	defer tbl.Release()

	assert.Equal(t, int64(3), tbl.NumRows())
	assert.Equal(t, 1, tbl.Column(2).NullN())

	_, err = BuildRecord(mem, ScoresSchema(), [][]string{{"1", "a"}})
	assert.Error(t, err)
}

func TestBuildChunked(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	col, err := BuildChunked(mem, arrow.PrimitiveTypes.Int32, []string{"1", Null}, []string{"3"})
	require.NoError(t, err)
	defer col.Release()

	assert.Equal(t, 3, col.Len())
	assert.Equal(t, 1, col.NullN())
	assert.Len(t, col.Chunks(), 2)

	_, err = BuildChunked(mem, arrow.PrimitiveTypes.Int32, []string{"x"})
	assert.Error(t, err)
}
