package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

func TestBinopMapVectorVector(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{1, 2, 3})
	y := value.VecI64([]int64{10, 20, 30})
	res := BinopMap(p, Add, x, y)
	require.False(res.IsErr())
	require.Equal([]int64{11, 22, 33}, res.I64())
}

func TestBinopMapLengthMismatch(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{1, 2, 3})
	y := value.VecI64([]int64{10, 20})
	res := BinopMap(p, Add, x, y)
	require.True(res.IsErr())
	require.Equal("LENGTH", res.Err().Code)
}

func TestBinopMapAtomAtom(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.AtomI64(4)
	y := value.AtomI64(5)
	res := BinopMap(p, Mul, x, y)
	require.True(res.Kind().IsAtom())
	require.Equal(int64(20), res.I64()[0])
}

func TestBinopMapPromotesToF64(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{1, 2})
	y := value.VecF64([]float64{0.5, 0.5})
	res := BinopMap(p, Add, x, y)
	require.Equal(value.KF64, res.Kind().Base())
	require.Equal([]float64{1.5, 2.5}, res.F64())
}

func TestBinopMapTrueDivisionIsF64(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{7})
	y := value.VecI64([]int64{2})
	res := BinopMap(p, Div, x, y)
	require.Equal(value.KF64, res.Kind().Base())
	require.InDelta(3.5, res.F64()[0], 1e-9)
}

func TestBinopMapIntegerDivisionIsI64(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{7})
	y := value.VecI64([]int64{2})
	res := BinopMap(p, IDiv, x, y)
	require.Equal(value.KI64, res.Kind().Base())
	require.Equal(int64(3), res.I64()[0])
}

func TestBinopMapNullPropagation(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{value.NullI64, 5})
	y := value.VecI64([]int64{1, 2})
	res := BinopMap(p, Add, x, y)
	require.Equal(value.NullI64, res.I64()[0])
	require.Equal(int64(7), res.I64()[1])
}

func TestBinopMapUnknownPairIsTypeErr(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecGUID([]value.GUID{{}})
	y := value.VecI64([]int64{1})
	res := BinopMap(p, Add, x, y)
	require.True(res.IsErr())
	require.Equal("TYPE", res.Err().Code)
}

func TestCmpMapEq(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	x := value.VecI64([]int64{1, 2, 3})
	y := value.VecI64([]int64{1, 0, 3})
	res := CmpMap(p, Eq, x, y)
	require.Equal([]uint8{1, 0, 1}, res.B8())
}

func TestBinopMapDateArith(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	d := value.VecDate([]int32{100})
	delta := value.VecI64([]int64{5})
	res := BinopMap(p, Add, d, delta)
	require.Equal(value.KDate, res.Kind().Base())
	require.Equal(int32(105), res.I32()[0])
}

func TestCmpMapPartedRecursion(t *testing.T) {
	require := require.New(t)
	p := pool.New(4)
	part := value.Parted(value.KI64, []*value.Value{
		value.VecI64([]int64{1, 2}),
		value.VecI64([]int64{3, 4}),
	})
	res := CmpMap(p, Gt, part, value.AtomI64(2))
	require.Equal(value.KParted, res.Kind().Base())
	require.Equal([]uint8{0, 0}, res.Partitions()[0].B8())
	require.Equal([]uint8{1, 1}, res.Partitions()[1].B8())
}
