// Package ops implements the engine's ordering and set operators (§4.7):
// asc/desc/iasc/idesc, distinct, find/in/sect/except, bin/binr, plus the
// join and multi-column sort operators original_source/core's join.c and
// order.c add beyond the distilled spec.
package ops

import (
	"math"

	"github.com/arrowcol/engine/core/value"
)

// intKey extracts col's elements widened to int64, the same "treat every
// integer-family kind as an int64 key" trick core/index uses for compound
// grouping (§4.3.1).
func intKey(col *value.Value) ([]int64, bool) {
	switch col.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		b := col.B8()
		out := make([]int64, len(b))
		for i, x := range b {
			out[i] = int64(x)
		}
		return out, true
	case value.KI16:
		s := col.I16()
		out := make([]int64, len(s))
		for i, x := range s {
			out[i] = int64(x)
		}
		return out, true
	case value.KI32, value.KDate, value.KTime:
		s := col.I32()
		out := make([]int64, len(s))
		for i, x := range s {
			out[i] = int64(x)
		}
		return out, true
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		return col.I64(), true
	}
	return nil, false
}

// elemHash64 returns a stable per-element identity key usable as a map key
// (float64 bit pattern for floats so NaN compares by bit pattern like every
// other null sentinel in this engine, per-kind scalar otherwise).
func elemHash64(col *value.Value, row int) interface{} {
	switch col.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return col.B8()[row]
	case value.KI16:
		return col.I16()[row]
	case value.KI32, value.KDate, value.KTime:
		return col.I32()[row]
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		return col.I64()[row]
	case value.KF64:
		return math.Float64bits(col.F64()[row])
	case value.KGUID:
		return col.GUIDs()[row]
	}
	return nil
}

// less reports whether col[i] < col[j], NULLs sorting first, mirroring the
// per-kind null sentinel ordering invariant (§3.1).
func less(col *value.Value, i, j int) bool {
	switch col.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return col.B8()[i] < col.B8()[j]
	case value.KI16:
		return col.I16()[i] < col.I16()[j]
	case value.KI32, value.KDate, value.KTime:
		return col.I32()[i] < col.I32()[j]
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		return col.I64()[i] < col.I64()[j]
	case value.KF64:
		a, b := col.F64()[i], col.F64()[j]
		an, bn := value.IsNullF64(a), value.IsNullF64(b)
		if an != bn {
			return an
		}
		if an && bn {
			return false
		}
		return a < b
	}
	return false
}

func equal(col *value.Value, i, j int) bool {
	return elemHash64(col, i) == elemHash64(col, j)
}
