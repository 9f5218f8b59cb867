package preview

import (
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrowview/domain/report"
	"arrowview/internal/testkit"
)

func scores(t *testing.T, mem memory.Allocator) arrow.Table {
	t.Helper()
	// two batches so head has to cross a record boundary
	tbl, err := testkit.BuildTable(mem, testkit.ScoresSchema(),
		[][]string{{"1", "a", "10.0"}, {"2", "b", testkit.Null}},
		[][]string{{"3", "c", "30.5"}},
	)
	require.NoError(t, err)
	return tbl
}

func TestHead(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)
	tbl := scores(t, mem)
	defer tbl.Release()

	got, err := Head(tbl, 3)
	require.NoError(t, err)
	assert.Equal(t, report.KindHead, got.Kind)
	assert.Equal(t, []string{"", "id", "name", "score"}, got.Header)
	assert.Equal(t, [][]string{
		{"0", "1", "a", "10"},
		{"1", "2", "b", "null"},
		{"2", "3", "c", "30.5"},
	}, got.Rows)
}

func TestHeadClampsToTableLength(t *testing.T) {
	tbl := scores(t, memory.NewGoAllocator())
	defer tbl.Release()

	for n, want := range map[int]int{0: 0, 1: 1, 2: 2, 10: 3} {
		got, err := Head(tbl, n)
		require.NoError(t, err)
		assert.Len(t, got.Rows, want, "n=%d", n)
	}

	_, err := Head(tbl, -1)
	assert.Error(t, err)
}

func TestInfo(t *testing.T) {
	tbl := scores(t, memory.NewGoAllocator())
	defer tbl.Release()

	got := Info(tbl)
	assert.Equal(t, report.KindInfo, got.Kind)
	assert.Equal(t, InfoHeader, got.Header)
	assert.Equal(t, [][]string{
		{"0", "id", "3", "int64"},
		{"1", "name", "3", "utf8"},
		{"2", "score", "2", "float64"},
	}, got.Rows)
}

func TestInfoOrders(t *testing.T) {
	cfg := testkit.DefaultShoppingConfig()
	cfg.Rows = 20
	tbl, err := testkit.NewShoppingDataGenerator(cfg).GenerateTable(memory.NewGoAllocator())
	require.NoError(t, err)
	defer tbl.Release()

	got := Info(tbl)
	require.Len(t, got.Rows, 8)
	assert.Equal(t, "decimal(10, 2)", got.Rows[3][3])
	assert.Equal(t, "timestamp[s, tz=UTC]", got.Rows[7][3])
}
