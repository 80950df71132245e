package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAtomKindIsNegative(t *testing.T) {
	require := require.New(t)
	a := AtomI64(7)
	require.True(a.Kind().IsAtom())
	require.Equal(KI64, a.Kind().Base())
	require.Equal(0, a.Len())
}

func TestVectorLen(t *testing.T) {
	require := require.New(t)
	v := VecI64([]int64{2, 2, 7, 2, 7})
	require.False(v.Kind().IsAtom())
	require.Equal(5, v.Len())
}

func TestCOWIsolation(t *testing.T) {
	require := require.New(t)
	orig := VecI64([]int64{1, 2, 3})
	alias := orig.Retain()

	require.False(orig.IsUnique())

	cp := COW(alias)
	require.NotSame(orig, cp)
	cp.i64[0] = 99

	require.Equal(int64(1), orig.i64[0])
	require.Equal(int64(99), cp.i64[0])
}

func TestCOWUniqueReturnsSame(t *testing.T) {
	require := require.New(t)
	v := VecI64([]int64{1, 2, 3})
	require.Same(v, COW(v))
}

func TestTableInvariantEqualColumnCounts(t *testing.T) {
	require := require.New(t)
	keys := VecSymbol([]int64{0, 1})
	col1 := VecI64([]int64{1, 2, 3})
	col2 := VecF64([]float64{1, 2, 3})
	tbl := Table(keys, []*Value{col1, col2})

	require.Equal(3, tbl.RowCount())
	require.Equal(2, tbl.ColumnCount())
}

func TestAtIds(t *testing.T) {
	require := require.New(t)
	v := VecI64([]int64{10, 20, 30, 40})
	got := AtIds(v, []int64{3, 0, 1})
	require.Equal([]int64{40, 10, 20}, got.I64())
}

func TestAtIdsOutOfRange(t *testing.T) {
	require := require.New(t)
	v := VecI64([]int64{10, 20})
	got := AtIds(v, []int64{5})
	require.True(got.IsErr())
	require.Equal("INDEX", got.Err().Code)
}

func TestNullF64IsNaN(t *testing.T) {
	require := require.New(t)
	require.True(IsNullF64(NullF64))
	require.False(IsNullF64(1.0))
}

func TestPartedLenSumsPartitions(t *testing.T) {
	require := require.New(t)
	p1 := VecI64([]int64{1, 2})
	p2 := VecI64([]int64{3, 4, 5})
	pc := Parted(KI64, []*Value{p1, p2})
	require.Equal(5, pc.Len())
}

func TestMapCommonLenSumsCounts(t *testing.T) {
	require := require.New(t)
	mc := MapCommon(VecI64([]int64{42}), []int64{3})
	require.Equal(3, mc.Len())
}
