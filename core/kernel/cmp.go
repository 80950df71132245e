package kernel

import "github.com/arrowcol/engine/core/value"

// CmpOp identifies a comparison operator.
type CmpOp int

const (
	Eq CmpOp = iota
	Ne
	Lt
	Gt
	Le
	Ge
)

// CmpPartial fills a B8 result vector for rows [offset, offset+length)
// comparing x and y under op (§4.2: "Comparisons always return a B8
// vector").
func CmpPartial(op CmpOp, x, y *value.Value, offset, length int, out *value.Value) *value.Value {
	lb, rb := x.Kind().Base(), y.Kind().Base()

	if lb == value.KGUID && rb == value.KGUID {
		dst := out.B8()
		xs, ys := x.GUIDs(), y.GUIDs()
		for i := offset; i < offset+length; i++ {
			a := xs[idx(x, i)]
			b := ys[idx(y, i)]
			dst[i] = b2u(guidCmp(op, a, b))
		}
		return nil
	}

	dst := out.B8()
	for i := offset; i < offset+length; i++ {
		a, an := asF64(x, i)
		b, bn := asF64(y, i)
		dst[i] = b2u(cmpF64(op, a, b, an, bn))
	}
	return nil
}

func guidCmp(op CmpOp, a, b value.GUID) bool {
	eq := a == b
	switch op {
	case Eq:
		return eq
	case Ne:
		return !eq
	default:
		return false // ordering comparisons on GUID are not meaningful
	}
}

// cmpF64 implements the six comparisons with null handling: a NaN/null
// operand makes every ordering comparison false and Eq false, Ne true,
// mirroring SQL-style null semantics while staying within §4.2's general
// "any NaN operand yields NaN for arithmetic" spirit extended to
// comparisons (nulls never compare equal to anything, including another
// null, except via explicit null-checking helpers elsewhere).
func cmpF64(op CmpOp, a, b float64, an, bn bool) bool {
	if an || bn {
		switch op {
		case Ne:
			return true
		default:
			return false
		}
	}
	switch op {
	case Eq:
		return a == b
	case Ne:
		return a != b
	case Lt:
		return a < b
	case Gt:
		return a > b
	case Le:
		return a <= b
	case Ge:
		return a >= b
	}
	return false
}

func b2u(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
