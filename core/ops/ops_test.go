package ops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

func TestFindScenario5(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{10, 20, 30})
	y := value.VecI64([]int64{30, 25, 10})
	got := Find(x, y)
	require.Equal([]int64{2, value.NullI64, 0}, got.I64())
}

func TestInMembership(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{1, 2, 3})
	y := value.VecI64([]int64{2, 4})
	got := In(x, y)
	require.Equal([]uint8{0, 1, 0}, got.B8())
}

func TestDistinctPreservesFirstOccurrence(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{5, 1, 5, 2, 1})
	got := Distinct(x)
	require.Equal([]int64{5, 1, 2}, got.I64())
}

func TestDistinctWideRangeFallsBackToHashSet(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{1 << 40, 7, 1 << 40, -(1 << 50)})
	got := Distinct(x)
	require.Equal([]int64{1 << 40, 7, -(1 << 50)}, got.I64())
}

func TestSectAndExcept(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{1, 2, 3, 2})
	y := value.VecI64([]int64{2, 4})
	require.Equal([]int64{2}, Sect(x, y).I64())
	require.ElementsMatch([]int64{1, 3}, Except(x, y).I64())
}

func TestBinAndBinrBounds(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{10, 20, 30})
	y := value.VecI64([]int64{5, 10, 15, 30, 40})

	bin := Bin(x, y).I64()
	require.Equal([]int64{-1, 0, 0, 2, 2}, bin)
	for _, b := range bin {
		require.True(b >= -1 && b <= int64(x.Len()-1))
	}

	binr := Binr(x, y).I64()
	require.Equal([]int64{0, 0, 1, 2, 3}, binr)
	for _, b := range binr {
		require.True(b >= 0 && b <= int64(x.Len()))
	}
}

func TestIascAndAsc(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{3, 1, 2})
	perm := Iasc(x).I64()
	require.Equal([]int64{1, 2, 0}, perm)

	sorted := Asc(x)
	require.Equal([]int64{1, 2, 3}, sorted.I64())
	require.Equal(value.AttrAsc, sorted.Attr())
}

func TestAscReusesAscAttrAsClone(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{1, 2, 3})
	x.SetAttr(value.AttrAsc)
	out := Asc(x)
	require.Equal([]int64{1, 2, 3}, out.I64())
}

func TestDescFromAscAttrReversesWithoutResort(t *testing.T) {
	require := require.New(t)
	x := value.VecI64([]int64{1, 2, 3})
	x.SetAttr(value.AttrAsc)
	out := Desc(x)
	require.Equal([]int64{3, 2, 1}, out.I64())
	require.Equal(value.AttrDesc, out.Attr())
}

func TestSortByMultiColumn(t *testing.T) {
	require := require.New(t)
	sym := value.VecI64([]int64{1, 0, 1, 0})
	px := value.VecF64([]float64{20, 30, 10, 40})
	perm := SortBy([]*value.Value{sym, px}, []bool{false, true}).I64()
	require.Equal([]int64{3, 1, 0, 2}, perm)
}

func TestJoinInnerAndOuter(t *testing.T) {
	require := require.New(t)
	p := pool.New(2)
	left := value.VecI64([]int64{1, 2, 3})
	right := value.VecI64([]int64{2, 2, 4})

	li, ri := Join(p, left, right, false)
	require.Equal([]int64{1, 1}, li.I64())
	require.ElementsMatch([]int64{0, 1}, ri.I64())

	liOuter, riOuter := Join(p, left, right, true)
	require.Equal(4, liOuter.Len())
	require.Contains(liOuter.I64(), int64(0))
	require.Contains(liOuter.I64(), int64(2))
	require.Contains(riOuter.I64(), value.NullI64)
}
