package index

import (
	"github.com/mitchellh/hashstructure"

	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

const maxUint64 = ^uint64(0)

// GroupCompound groups by several columns at once (e.g. "by sym, date"),
// §4.3.1. It first tries perfect-hash composition (encode each row as one
// synthesised integer key, then reuse the scoped I64 grouping path);
// if any column is unbounded-range or the composed key would overflow
// uint64, it falls back to a generic row-hash.
func GroupCompound(p *pool.Pool, cols []*value.Value, filter []int64) *Index {
	if len(cols) == 1 {
		return Group(p, cols[0], filter)
	}

	if key, ok := composeKey(cols, filter); ok {
		return groupI64Like(p, key, filter)
	}
	return groupRowHash(cols, filter)
}

// composeKey implements the perfect-hash composition: key_i = Σ_c
// (col_c[i] − min_c) · multiplier_c, multiplier_0 = 1, multiplier_{c+1} =
// multiplier_c · range_c, checking for uint64 overflow at every step
// (§4.3.1).
func composeKey(cols []*value.Value, filter []int64) ([]int64, bool) {
	n := selLen(cols[0].Len(), filter)
	mins := make([]int64, len(cols))
	multipliers := make([]uint64, len(cols))
	multipliers[0] = 1

	for c, col := range cols {
		if !col.Kind().IsInteger() {
			return nil, false
		}
		vals, ok := intValues(col)
		if !ok {
			return nil, false
		}
		min, max := vals[sel(0, filter)], vals[sel(0, filter)]
		for i := 0; i < n; i++ {
			v := vals[sel(i, filter)]
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		mins[c] = min
		rng := uint64(max-min) + 1
		next, overflow := mulOverflows(multipliers[c], rng)
		if overflow {
			return nil, false
		}
		if c+1 < len(cols) {
			multipliers[c+1] = next
		}
	}

	// The key covers every source row: groupI64Like applies filter to it.
	key := make([]int64, cols[0].Len())
	vecs := make([][]int64, len(cols))
	for c, col := range cols {
		vecs[c], _ = intValues(col)
	}
	for i := range key {
		var acc uint64
		for c := range cols {
			term := uint64(vecs[c][i]-mins[c]) * multipliers[c]
			acc += term
		}
		key[i] = int64(acc)
	}
	return key, true
}

func mulOverflows(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, false
	}
	if a > maxUint64/b {
		return 0, true
	}
	return a * b, false
}

func intValues(col *value.Value) ([]int64, bool) {
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

// groupRowHash is the generic row-hash fallback: a per-row 64-bit hash
// folded from each column's element hash (via hashstructure, the
// teacher's generic-hashing dependency), an open-addressing lookup, and a
// column-by-column tie-break on collision (§4.3.1).
func groupRowHash(cols []*value.Value, filter []int64) *Index {
	n := selLen(cols[0].Len(), filter)
	ids := make([]int64, n)
	buckets := make(map[uint64][]int64)
	rows := make([][]interface{}, 0, n)
	nextGroup := int64(0)

	for i := 0; i < n; i++ {
		row := rowKey(cols, sel(i, filter))
		h, _ := hashstructure.Hash(row, nil)
		bucket := buckets[h]
		found := int64(-1)
		for _, gid := range bucket {
			if rowEqual(rows[gid], row) {
				found = gid
				break
			}
		}
		if found == -1 {
			found = nextGroup
			rows = append(rows, row)
			buckets[h] = append(bucket, found)
			nextGroup++
		}
		ids[i] = found
	}

	return &Index{Scheme: SchemeIDs, GroupCount: int(nextGroup), GroupIDs: ids, Filter: filter}
}

func rowKey(cols []*value.Value, row int) []interface{} {
	out := make([]interface{}, len(cols))
	for c, col := range cols {
		out[c] = elemInterface(col, row)
	}
	return out
}

func rowEqual(a, b []interface{}) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func elemInterface(col *value.Value, row int) interface{} {
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
		return col.F64()[row]
	case value.KGUID:
		return col.GUIDs()[row]
	}
	return nil
}
