package aggr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

func TestScenario2NullPreservation(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{1.0, value.NullF64, 3.0, value.NullF64})
	ix := index.Group(p, value.VecI64([]int64{0, 0, 0, 0}), nil)

	sum := Sum(p, col, ix)
	require.InDelta(4.0, sum.F64()[0], 1e-9)

	cnt := Count(p, ix)
	require.Equal(int64(4), cnt.I64()[0])

	avg := Avg(p, col, ix)
	require.InDelta(2.0, avg.F64()[0], 1e-9)

	dev := Dev(p, col, ix)
	require.InDelta(1.0, dev.F64()[0], 1e-9)
}

func TestScenario3GroupedSum(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	sym := value.VecI64([]int64{0, 1, 0}) // A, B, A (interned ids)
	px := value.VecI64([]int64{10, 20, 30})

	ix := index.Group(p, sym, nil)
	sum := Sum(p, px, ix)
	require.ElementsMatch([]int64{40, 20}, sum.I64())
}

func TestSumVsAvgProperty(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{1, 2, 3, 4, 5})
	ix := index.Group(p, value.VecI64([]int64{0, 0, 0, 0, 0}), nil)

	sum := Sum(p, col, ix).F64()[0]
	avg := Avg(p, col, ix).F64()[0]
	cnt := Count(p, ix).I64()[0]
	require.InDelta(sum, avg*float64(cnt), 1e-9)
}

func TestFirstLastAllNull(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{value.NullF64, value.NullF64})
	ix := index.Group(p, value.VecI64([]int64{0, 0}), nil)

	first := First(p, col, ix)
	require.True(value.IsNullF64(first.F64()[0]))
}

func TestFirstLastConsistencyNoGrouping(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecI64([]int64{7, 2, 9})
	ix := index.Group(p, value.VecI64([]int64{0, 0, 0}), nil)

	first := First(p, col, ix)
	last := Last(p, col, ix)
	require.Equal(int64(7), first.I64()[0])
	require.Equal(int64(9), last.I64()[0])
}

func TestDevSingleElementIsZero(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{5})
	ix := index.Group(p, value.VecI64([]int64{0}), nil)
	require.Equal(0.0, Dev(p, col, ix).F64()[0])
}

func TestMedOddAndEven(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{1, 3, 2})
	ix := index.Group(p, value.VecI64([]int64{0, 0, 0}), nil)
	require.Equal(2.0, Med(p, col, ix).F64()[0])

	col2 := value.VecF64([]float64{1, 2, 3, 4})
	ix2 := index.Group(p, value.VecI64([]int64{0, 0, 0, 0}), nil)
	require.Equal(2.5, Med(p, col2, ix2).F64()[0])
}

func TestWindowAggregationScenario4(t *testing.T) {
	require := require.New(t)
	keys := value.VecI64([]int64{1, 3, 5, 7, 9})
	vals := value.VecF64([]float64{10, 30, 50, 70, 90})
	meta := &index.WindowMeta{
		SourceKeys: keys,
		KL:         []int64{2},
		KR:         []int64{6},
		FI:         []int64{0},
		TI:         []int64{4},
	}
	ix := index.BuildWindow(meta)
	sum := Sum(nil, vals, ix)
	require.Equal(80.0, sum.F64()[0]) // rows 1,2 -> values 30 + 50
}

func TestCollectPreservesOrder(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecI64([]int64{1, 2, 3, 4})
	ix := index.Group(p, value.VecI64([]int64{0, 1, 0, 1}), nil)
	collected := Collect(p, col, ix)
	require.Equal([]int64{1, 3}, collected.List()[0].I64())
	require.Equal([]int64{2, 4}, collected.List()[1].I64())
}

func TestPartedMapFoldsToScalarWithoutFilter(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	part := value.Parted(value.KI64, []*value.Value{
		value.VecI64([]int64{1, 2}),
		value.VecI64([]int64{3, 4}),
	})
	all := value.AtomI64(partedSentinelAll)
	res := PartedMap(p, OpSum, part, []*value.Value{all, all})
	require.True(res.Kind().IsAtom())
	require.Equal(int64(10), res.I64()[0])
}

func TestPartedMapSkipsNilPartitionFilter(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	part := value.Parted(value.KI64, []*value.Value{
		value.VecI64([]int64{1, 2}),
		value.VecI64([]int64{100}),
	})
	all := value.AtomI64(partedSentinelAll)
	res := PartedMap(p, OpSum, part, []*value.Value{all, nil})
	require.True(res.Kind().IsAtom())
	require.Equal(int64(3), res.I64()[0])
}
