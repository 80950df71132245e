package kernel

import "github.com/arrowcol/engine/core/value"

// idx returns the element position to read from v for output row i: an
// atom always reads its single inline element (broadcast), a vector reads
// i directly. This is the scalar/vector fast-path split §4.2 describes as
// "scalar×vector, vector×scalar, vector×vector" kernels collapsed into one
// body.
func idx(v *value.Value, i int) int {
	if v.Kind().IsAtom() {
		return 0
	}
	return i
}

// asF64 reads element i of v as a float64, reporting whether it was the
// operand's typed null. Used by kernels whose result kind is F64.
func asF64(v *value.Value, i int) (float64, bool) {
	j := idx(v, i)
	switch v.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return float64(v.B8()[j]), false
	case value.KI16:
		x := v.I16()[j]
		return float64(x), x == value.NullI16
	case value.KI32, value.KDate, value.KTime:
		x := v.I32()[j]
		return float64(x), x == value.NullI32
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		x := v.I64()[j]
		return float64(x), x == value.NullI64
	case value.KF64:
		x := v.F64()[j]
		return x, value.IsNullF64(x)
	}
	return 0, true
}

// asI64 reads element i of v as an int64, reporting whether it was null.
func asI64(v *value.Value, i int) (int64, bool) {
	j := idx(v, i)
	switch v.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return int64(v.B8()[j]), false
	case value.KI16:
		x := v.I16()[j]
		return int64(x), x == value.NullI16
	case value.KI32, value.KDate, value.KTime:
		x := v.I32()[j]
		return int64(x), x == value.NullI32
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		x := v.I64()[j]
		return x, x == value.NullI64
	case value.KF64:
		x := v.F64()[j]
		return int64(x), value.IsNullF64(x)
	}
	return 0, true
}

func vlen(x, y *value.Value) int {
	if !x.Kind().IsAtom() {
		return x.Len()
	}
	return y.Len()
}
