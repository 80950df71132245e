package ops

import "github.com/arrowcol/engine/core/value"

// Find returns, for each element of y, the index of its first occurrence
// in x, or NULL_I64 if absent. Uses a scoped perfect hash when x's
// integer-family range is small, else an open-addressing table built from
// x (§4.7).
func Find(x, y *value.Value) *value.Value {
	out := make([]int64, y.Len())
	if keys, ok := intKey(x); ok {
		if table, min, scoped := scopedTable(keys); scoped {
			ykeys, yok := intKey(y)
			if yok {
				for i, k := range ykeys {
					shifted := k - min
					if shifted < 0 || int(shifted) >= len(table) || table[shifted] == -1 {
						out[i] = value.NullI64
						continue
					}
					out[i] = table[shifted]
				}
				return value.VecI64(out)
			}
		}
	}

	index := buildLookup(x)
	for i := 0; i < y.Len(); i++ {
		h := hashElem(y, i)
		found := value.NullI64
		for _, j := range index[h] {
			if elemHash64(x, j) == elemHash64(y, i) {
				found = int64(j)
				break
			}
		}
		out[i] = found
	}
	return value.VecI64(out)
}

// In reports, for each element of x, whether it appears anywhere in y
// (§4.7: "B8 vector; true where x[i] appears in y").
func In(x, y *value.Value) *value.Value {
	index := buildLookup(y)
	out := make([]uint8, x.Len())
	for i := 0; i < x.Len(); i++ {
		h := hashElem(x, i)
		for _, j := range index[h] {
			if elemHash64(y, j) == elemHash64(x, i) {
				out[i] = 1
				break
			}
		}
	}
	return value.VecB8(out)
}

// Sect returns the distinct elements of x that also appear in y,
// preserving x's first-occurrence order — the intersection set op named
// alongside find/in/distinct in the component budget table.
func Sect(x, y *value.Value) *value.Value {
	mask := In(Distinct(x), y).B8()
	ids := make([]int64, 0, len(mask))
	for i, m := range mask {
		if m == 1 {
			ids = append(ids, int64(i))
		}
	}
	return value.AtIds(Distinct(x), ids)
}

// Except returns the distinct elements of x that do not appear in y.
func Except(x, y *value.Value) *value.Value {
	d := Distinct(x)
	mask := In(d, y).B8()
	ids := make([]int64, 0, len(mask))
	for i, m := range mask {
		if m == 0 {
			ids = append(ids, int64(i))
		}
	}
	return value.AtIds(d, ids)
}

// scopedTable builds a perfect-hash first-occurrence table over keys when
// their range is small enough (mirrors core/index's scoped-vs-unscoped
// split, §4.3/§4.7).
func scopedTable(keys []int64) (table []int64, min int64, ok bool) {
	if len(keys) == 0 {
		return nil, 0, false
	}
	min, max := keys[0], keys[0]
	for _, k := range keys {
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	rng := max - min + 1
	if rng <= 0 || rng > int64(len(keys)) || rng > distinctScopeLimit {
		return nil, 0, false
	}
	table = make([]int64, rng)
	for i := range table {
		table[i] = -1
	}
	for i, k := range keys {
		shifted := k - min
		if table[shifted] == -1 {
			table[shifted] = int64(i)
		}
	}
	return table, min, true
}

// buildLookup indexes every row of col by its hash, first occurrence
// first in each bucket's slice — the open-addressing fallback find/in use
// when col isn't a scoped integer range.
func buildLookup(col *value.Value) map[uint64][]int {
	n := col.Len()
	index := make(map[uint64][]int, n)
	for i := 0; i < n; i++ {
		h := hashElem(col, i)
		index[h] = append(index[h], i)
	}
	return index
}
