package index

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

func TestGroupScenario1(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecI64([]int64{2, 2, 7, 2, 7})
	ix := Group(p, col, nil)
	require.Equal(5, ix.Len())

	// group completeness: every row assigned exactly one group, counted.
	counts := map[int64]int{}
	for i := 0; i < ix.Len(); i++ {
		counts[ix.GroupOf(i)]++
	}
	require.Len(counts, 2)
	var sizes []int
	for _, c := range counts {
		sizes = append(sizes, c)
	}
	require.ElementsMatch([]int{3, 2}, sizes)
}

func TestGroupByteHistogram(t *testing.T) {
	require := require.New(t)
	col := value.VecB8([]uint8{1, 0, 1, 1, 0})
	ix := groupByte(col, nil)
	require.Equal(2, ix.GroupCount)
}

func TestGroupCompoundPerfectHash(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	a := value.VecI64([]int64{0, 0, 1, 1})
	b := value.VecI64([]int64{0, 1, 0, 1})
	ix := GroupCompound(p, []*value.Value{a, b}, nil)
	require.Equal(4, ix.GroupCount)
	seen := map[int64]bool{}
	for i := 0; i < 4; i++ {
		seen[ix.GroupOf(i)] = true
	}
	require.Len(seen, 4)
}

func TestGroupCompoundRowsWithSameKeyShareGroup(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	a := value.VecI64([]int64{0, 0, 1})
	b := value.VecI64([]int64{0, 0, 0})
	ix := GroupCompound(p, []*value.Value{a, b}, nil)
	require.Equal(2, ix.GroupCount)
	require.Equal(ix.GroupOf(0), ix.GroupOf(1))
	require.NotEqual(ix.GroupOf(0), ix.GroupOf(2))
}

func TestWindowRangeScenario4(t *testing.T) {
	require := require.New(t)
	keys := value.VecI64([]int64{1, 3, 5, 7, 9})
	meta := &WindowMeta{
		SourceKeys: keys,
		KL:         []int64{2},
		KR:         []int64{6},
		FI:         []int64{0},
		TI:         []int64{4},
		LeftOpen:   false,
	}
	ix := BuildWindow(meta)
	li, ri, ok := ix.Range(0)
	require.True(ok)
	require.Equal(1, li)
	require.Equal(2, ri)
}

func TestWindowRangeEmpty(t *testing.T) {
	require := require.New(t)
	keys := value.VecI64([]int64{1, 3, 5})
	meta := &WindowMeta{
		SourceKeys: keys,
		KL:         []int64{10},
		KR:         []int64{20},
		FI:         []int64{0},
		TI:         []int64{2},
	}
	ix := BuildWindow(meta)
	_, _, ok := ix.Range(0)
	require.False(ok)
}

func TestGroupF64UsesRadixPath(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	col := value.VecF64([]float64{1.5, 2.5, 1.5, 3.5})
	ix := Group(p, col, nil)
	require.Equal(3, ix.GroupCount)
	require.Equal(ix.GroupOf(0), ix.GroupOf(2))
}

func TestGroupGUID(t *testing.T) {
	require := require.New(t)
	g1 := value.GUID{1}
	g2 := value.GUID{2}
	col := value.VecGUID([]value.GUID{g1, g2, g1})
	ix := Group(nil, col, nil)
	require.Equal(2, ix.GroupCount)
	require.Equal(ix.GroupOf(0), ix.GroupOf(2))
}

func TestGroupMapCommonIsPartedCommonScheme(t *testing.T) {
	require := require.New(t)
	mc := value.MapCommon(value.VecI64([]int64{1, 2}), []int64{3, 4})
	ix := Group(nil, mc, nil)
	require.Equal(SchemePartedCommon, ix.Scheme)
	require.Equal(2, ix.GroupCount)
}
