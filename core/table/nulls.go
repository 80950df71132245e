// Package table implements the engine's table mutation operators (§4.5):
// insert, upsert, and the original_source/core/amend.c-grounded generic
// amend primitive update is built from.
package table

import "github.com/arrowcol/engine/core/value"

// nullAtom returns the typed-null atom for a column's base kind (§6: the
// null sentinels fixed per type).
func nullAtom(k value.Kind) *value.Value {
	switch k.Base() {
	case value.KB8:
		return value.AtomB8(value.NullB8)
	case value.KU8:
		return value.AtomU8(value.NullU8)
	case value.KC8:
		return value.AtomC8(value.NullC8)
	case value.KI16:
		return value.AtomI16(value.NullI16)
	case value.KI32:
		return value.AtomI32(value.NullI32)
	case value.KDate:
		return value.AtomDate(value.NullI32)
	case value.KTime:
		return value.AtomTime(value.NullI32)
	case value.KI64:
		return value.AtomI64(value.NullI64)
	case value.KTimestamp:
		return value.AtomTimestamp(value.NullI64)
	case value.KSymbol:
		return value.AtomSymbol(value.NullSymbol)
	case value.KF64:
		return value.AtomF64(value.NullF64)
	case value.KGUID:
		return value.AtomGUID(value.NullGUID)
	}
	return value.ErrValue("TYPE", "nullAtom: unsupported kind "+k.String())
}

// NullVec is nullVec exported for core/query's update "create column under
// a filter" path (§4.6), which needs the same typed-null fill outside this
// package.
func NullVec(k value.Kind, n int) *value.Value { return nullVec(k, n) }

// nullVec returns an n-element vector of k's typed null, used to fill a
// column insert/upsert didn't provide a value for (§4.5: "missing columns
// are filled with per-column typed nulls").
func nullVec(k value.Kind, n int) *value.Value {
	switch k.Base() {
	case value.KB8:
		return value.VecB8(fillU8(n, value.NullB8))
	case value.KU8:
		return value.VecU8(fillU8(n, value.NullU8))
	case value.KC8:
		return value.VecC8(fillU8(n, value.NullC8))
	case value.KI16:
		out := make([]int16, n)
		for i := range out {
			out[i] = value.NullI16
		}
		return value.VecI16(out)
	case value.KI32:
		return value.VecI32(fillI32(n, value.NullI32))
	case value.KDate:
		return value.VecDate(fillI32(n, value.NullI32))
	case value.KTime:
		return value.VecTime(fillI32(n, value.NullI32))
	case value.KI64:
		return value.VecI64(fillI64(n, value.NullI64))
	case value.KTimestamp:
		return value.VecTimestamp(fillI64(n, value.NullI64))
	case value.KSymbol:
		return value.VecSymbol(fillI64(n, value.NullSymbol))
	case value.KF64:
		out := make([]float64, n)
		for i := range out {
			out[i] = value.NullF64
		}
		return value.VecF64(out)
	case value.KGUID:
		out := make([]value.GUID, n)
		for i := range out {
			out[i] = value.NullGUID
		}
		return value.VecGUID(out)
	}
	return value.ErrValue("TYPE", "nullVec: unsupported kind "+k.String())
}

func fillU8(n int, x uint8) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = x
	}
	return out
}

func fillI32(n int, x int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = x
	}
	return out
}

func fillI64(n int, x int64) []int64 {
	out := make([]int64, n)
	for i := range out {
		out[i] = x
	}
	return out
}
