package table

import "github.com/arrowcol/engine/core/value"

// appendColumn concatenates existing (a COW'd column) with add (an atom —
// broadcast as a single element — or a vector of matching base kind),
// synthesising a fresh vector the way value.Clone already synthesises a
// fresh backing slice rather than mutating existing's (core/value exposes
// no in-place slice mutator outside the package, see DESIGN.md).
func appendColumn(existing, add *value.Value) *value.Value {
	if existing.Kind().Base() != add.Kind().Base() {
		return value.ErrValue("TYPE", "append: column kind mismatch "+existing.Kind().String()+" vs "+add.Kind().String())
	}
	var addVec *value.Value
	if add.Kind().IsAtom() {
		addVec = broadcastAtom(add, 1)
	} else {
		addVec = add
	}

	switch existing.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return rebuildByte(existing.Kind().Base(), append(append([]uint8(nil), existing.B8()...), addVec.B8()...))
	case value.KI16:
		return value.VecI16(append(append([]int16(nil), existing.I16()...), addVec.I16()...))
	case value.KI32, value.KDate, value.KTime:
		return rebuildI32(existing.Kind().Base(), append(append([]int32(nil), existing.I32()...), addVec.I32()...))
	case value.KI64, value.KTimestamp, value.KSymbol:
		return rebuildI64(existing.Kind().Base(), append(append([]int64(nil), existing.I64()...), addVec.I64()...))
	case value.KF64:
		return value.VecF64(append(append([]float64(nil), existing.F64()...), addVec.F64()...))
	case value.KGUID:
		return value.VecGUID(append(append([]value.GUID(nil), existing.GUIDs()...), addVec.GUIDs()...))
	}
	return value.ErrValue("TYPE", "append: unsupported kind "+existing.Kind().String())
}

// broadcastAtom repeats atom's scalar n times into a fresh vector, the
// shape a single-record insert/a scalar update value needs against a
// multi-row column (§4.5 "broadcast it across the selected rows").
func broadcastAtom(atom *value.Value, n int) *value.Value {
	switch atom.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return rebuildByte(atom.Kind().Base(), fillU8(n, atom.B8()[0]))
	case value.KI16:
		out := make([]int16, n)
		for i := range out {
			out[i] = atom.I16()[0]
		}
		return value.VecI16(out)
	case value.KI32, value.KDate, value.KTime:
		return rebuildI32(atom.Kind().Base(), fillI32(n, atom.I32()[0]))
	case value.KI64, value.KTimestamp, value.KSymbol:
		return rebuildI64(atom.Kind().Base(), fillI64(n, atom.I64()[0]))
	case value.KF64:
		out := make([]float64, n)
		for i := range out {
			out[i] = atom.F64()[0]
		}
		return value.VecF64(out)
	case value.KGUID:
		out := make([]value.GUID, n)
		for i := range out {
			out[i] = atom.GUIDs()[0]
		}
		return value.VecGUID(out)
	}
	return value.ErrValue("TYPE", "broadcast: unsupported kind "+atom.Kind().String())
}

func rebuildByte(k value.Kind, data []uint8) *value.Value {
	switch k {
	case value.KB8:
		return value.VecB8(data)
	case value.KU8:
		return value.VecU8(data)
	default:
		return value.VecC8(data)
	}
}

func rebuildI32(k value.Kind, data []int32) *value.Value {
	switch k {
	case value.KDate:
		return value.VecDate(data)
	case value.KTime:
		return value.VecTime(data)
	default:
		return value.VecI32(data)
	}
}

func rebuildI64(k value.Kind, data []int64) *value.Value {
	switch k {
	case value.KTimestamp:
		return value.VecTimestamp(data)
	case value.KSymbol:
		return value.VecSymbol(data)
	default:
		return value.VecI64(data)
	}
}
