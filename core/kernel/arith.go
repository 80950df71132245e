package kernel

import (
	"math"

	"github.com/arrowcol/engine/core/kerr"
	"github.com/arrowcol/engine/core/value"
)

// ArithPartial is the chunk-local body of an arithmetic kernel: it
// computes op(x, y) for rows [offset, offset+length) of a result of kind
// resultKind, writing into out starting at offset. Returns nil on success,
// or an ERR value (§4.2 partial kernel signature: "kernel(x, y, len,
// offset, out) -> NULL or ERR").
func ArithPartial(op Op, x, y *value.Value, offset, length int, resultKind value.Kind, out *value.Value) *value.Value {
	switch resultKind {
	case value.KF64:
		dst := out.F64()
		for i := offset; i < offset+length; i++ {
			dst[i] = arithF64(op, x, y, i)
		}
	case value.KI64, value.KTimestamp:
		dst := out.I64()
		for i := offset; i < offset+length; i++ {
			v, isNull := arithI64(op, x, y, i)
			if isNull {
				dst[i] = value.NullI64
			} else {
				dst[i] = v
			}
		}
	case value.KI32, value.KDate, value.KTime:
		dst := out.I32()
		for i := offset; i < offset+length; i++ {
			v, isNull := arithI64(op, x, y, i)
			if isNull {
				dst[i] = value.NullI32
			} else {
				dst[i] = int32(v)
			}
		}
	case value.KI16:
		dst := out.I16()
		for i := offset; i < offset+length; i++ {
			v, isNull := arithI64(op, x, y, i)
			if isNull {
				dst[i] = value.NullI16
			} else {
				dst[i] = int16(v)
			}
		}
	default:
		return value.ErrValue("TYPE", "arith: unsupported result kind "+resultKind.String())
	}
	return nil
}

// arithF64 computes a float-typed result for row i. Any NaN operand yields
// NaN (§4.2 null semantics).
func arithF64(op Op, x, y *value.Value, i int) float64 {
	a, an := asF64(x, i)
	b, bn := asF64(y, i)
	if an || bn {
		return value.NullF64
	}
	switch op {
	case Add:
		return a + b
	case Sub:
		return a - b
	case Mul:
		return a * b
	case Div:
		if b == 0 {
			return value.NullF64
		}
		return a / b
	case IDiv:
		if b == 0 {
			return value.NullF64
		}
		return math.Trunc(a / b)
	case Mod:
		if b == 0 {
			return value.NullF64
		}
		return math.Mod(a, b)
	case Xbar:
		if b == 0 {
			return value.NullF64
		}
		return math.Floor(a/b) * b
	}
	return value.NullF64
}

// arithI64 computes an integer-typed result for row i. A typed-null
// operand propagates the result's typed null (§4.2: "for each integer
// operand equal to its typed null, the result at that position is the
// typed null of the result type").
func arithI64(op Op, x, y *value.Value, i int) (int64, bool) {
	a, an := asI64(x, i)
	b, bn := asI64(y, i)
	if an || bn {
		return 0, true
	}
	switch op {
	case Add:
		return a + b, false
	case Sub:
		return a - b, false
	case Mul:
		return a * b, false
	case IDiv:
		if b == 0 {
			return 0, true
		}
		return a / b, false
	case Mod:
		if b == 0 {
			return 0, true
		}
		return a % b, false
	case Xbar:
		if b == 0 {
			return 0, true
		}
		q := a / b
		if a%b != 0 && (a < 0) != (b < 0) {
			q--
		}
		return q * b, false
	}
	return 0, true
}

// Alloc builds a zero-valued result vector of kind k and length n, ready
// for ArithPartial to fill.
func Alloc(k value.Kind, n int) *value.Value {
	switch k {
	case value.KF64:
		return value.VecF64(make([]float64, n))
	case value.KI64:
		return value.VecI64(make([]int64, n))
	case value.KTimestamp:
		return value.VecTimestamp(make([]int64, n))
	case value.KI32:
		return value.VecI32(make([]int32, n))
	case value.KDate:
		return value.VecDate(make([]int32, n))
	case value.KTime:
		return value.VecTime(make([]int32, n))
	case value.KI16:
		return value.VecI16(make([]int16, n))
	case value.KB8:
		return value.VecB8(make([]uint8, n))
	}
	return value.ErrValue("TYPE", "alloc: unsupported kind "+k.String())
}

// TypeErr formats the §7 TYPE error for a missing (op, l, r) kernel entry.
func TypeErr(op string, l, r value.Kind) *value.Value {
	e := kerr.TypePair(op, l.String(), r.String())
	return value.ErrValue("TYPE", e.Error())
}
