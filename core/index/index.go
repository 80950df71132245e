// Package index implements the engine's grouping/joining descriptor: the
// Index 7-tuple (§3.4) and index_group, the dispatcher that builds one
// from a key column under one of four schemes — perfect hash on scoped
// integers, radix-partitioned hashing for large ranges, compound-key
// hashing for row-grouping, and common-value parted grouping, plus the
// sliding/as-of WINDOW scheme (§4.3).
package index

import (
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// Scheme tags which of the four grouping strategies an Index uses (§3.4).
// Lifted into the static type per the design note ("lifting the scheme out
// of a boxed integer into the static type eliminates a run-time branch
// inside every kernel") would mean four Go types; this package keeps the
// tagged-union shape instead because aggr and query need to hold an Index
// generically across schemes decided only at query time.
type Scheme int

const (
	SchemeShift Scheme = iota
	SchemeIDs
	SchemePartedCommon
	SchemeWindow
)

// ScopeLimit bounds the SHIFT (perfect-hash) scheme: a key range at or
// below this is cheap enough to act as a direct lookup table (§4.3).
// Overridable via core/config.
var ScopeLimit int64 = 1 << 20

// WindowMeta carries the WINDOW scheme's per-output-row boundaries
// (§3.4, §4.3.2).
type WindowMeta struct {
	// SourceKeys is the sorted ascending source-key vector the binary
	// searches run against.
	SourceKeys *value.Value
	// KL, KR are per-output-row left/right boundary keys.
	KL, KR []int64
	// FI, TI are per-output-row [fi,ti] bounds into SourceKeys.
	FI, TI []int64
	// LeftOpen selects "left-open" bias (true) vs "left-closed" (false);
	// mirrors meta.i64 == 1 vs 0 in §3.4.
	LeftOpen bool
}

// Index is the engine's grouping descriptor (§3.4).
type Index struct {
	Scheme     Scheme
	GroupCount int
	GroupIDs   []int64 // per-row group id; under SHIFT, the value-to-group table indexed by value-Shift
	Shift      int64
	Source     []int64 // source vector under SHIFT (value -> group via GroupIDs[source[i]-Shift])
	Filter     []int64 // optional row filter (row indices); nil = no filter
	Window     *WindowMeta
}

// GroupOf returns the group id of row i, resolving the SHIFT indirection
// when applicable (§3.4: "group = group_ids[source[i] - shift]").
func (ix *Index) GroupOf(i int) int64 {
	switch ix.Scheme {
	case SchemeShift:
		row := i
		if ix.Filter != nil {
			row = int(ix.Filter[i])
		}
		key := ix.Source[row] - ix.Shift
		return ix.GroupIDs[key]
	case SchemeIDs:
		return ix.GroupIDs[i]
	}
	return 0
}

// Len returns the number of (possibly filtered) rows the index covers.
func (ix *Index) Len() int {
	if ix.Filter != nil {
		return len(ix.Filter)
	}
	if ix.Scheme == SchemeShift {
		return len(ix.Source)
	}
	return len(ix.GroupIDs)
}

// Row maps index position i to the underlying table row (identity unless
// Filter is set).
func (ix *Index) Row(i int) int64 {
	if ix.Filter != nil {
		return ix.Filter[i]
	}
	return int64(i)
}

// Group builds an Index over val, restricted to filter (row indices, or
// nil for no filter), dispatching on val.Kind() per §4.3.
func Group(p *pool.Pool, val *value.Value, filter []int64) *Index {
	switch val.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return groupByte(val, filter)
	case value.KI64, value.KSymbol, value.KTimestamp:
		return groupI64Like(p, val.I64(), filter)
	case value.KEnum:
		return groupI64Like(p, val.I64(), filter)
	case value.KI32, value.KDate, value.KTime:
		widened := make([]int64, len(val.I32()))
		for i, x := range val.I32() {
			widened[i] = int64(x)
		}
		return groupI64Like(p, widened, filter)
	case value.KI16:
		widened := make([]int64, len(val.I16()))
		for i, x := range val.I16() {
			widened[i] = int64(x)
		}
		return groupI64Like(p, widened, filter)
	case value.KF64:
		return groupF64(p, val.F64(), filter)
	case value.KGUID:
		return groupGUID(val.GUIDs(), filter)
	case value.KList:
		return GroupCompound(p, val.List(), filter)
	case value.KMapList:
		return Group(p, val.Materialize(), filter)
	case value.KMapCommon:
		return groupPartedCommon(val.MapCommonCounts())
	}
	return nil
}

func groupPartedCommon(counts []int64) *Index {
	return &Index{Scheme: SchemePartedCommon, GroupCount: len(counts)}
}

func groupByte(val *value.Value, filter []int64) *Index {
	data := val.B8()
	n := selLen(len(data), filter)
	groupIDs := make([]int64, 256)
	for i := range groupIDs {
		groupIDs[i] = -1
	}
	ids := make([]int64, n)
	nextGroup := int64(0)
	for i := 0; i < n; i++ {
		row := sel(i, filter)
		k := int64(data[row])
		if groupIDs[k] == -1 {
			groupIDs[k] = nextGroup
			nextGroup++
		}
		ids[i] = groupIDs[k]
	}
	return &Index{Scheme: SchemeIDs, GroupCount: int(nextGroup), GroupIDs: ids, Filter: filter}
}

func sel(i int, filter []int64) int {
	if filter != nil {
		return int(filter[i])
	}
	return i
}

func selLen(n int, filter []int64) int {
	if filter != nil {
		return len(filter)
	}
	return n
}

// groupI64Like implements the I64-like key path: scoped perfect hash,
// unscoped radix-partitioned hash, chosen by range vs count (§4.3).
func groupI64Like(p *pool.Pool, data []int64, filter []int64) *Index {
	n := selLen(len(data), filter)
	if n == 0 {
		return &Index{Scheme: SchemeIDs, GroupCount: 0, GroupIDs: []int64{}, Filter: filter}
	}
	min, max := data[sel(0, filter)], data[sel(0, filter)]
	for i := 0; i < n; i++ {
		v := data[sel(i, filter)]
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	rng := max - min + 1

	if rng <= int64(n) {
		table := make([]int64, rng)
		for i := range table {
			table[i] = -1
		}
		nextGroup := int64(0)
		for i := 0; i < n; i++ {
			v := data[sel(i, filter)]
			k := v - min
			if table[k] == -1 {
				table[k] = nextGroup
				nextGroup++
			}
		}
		if rng <= ScopeLimit {
			return &Index{
				Scheme:     SchemeShift,
				GroupCount: int(nextGroup),
				GroupIDs:   table,
				Shift:      min,
				Source:     data,
				Filter:     filter,
			}
		}
		ids := make([]int64, n)
		for i := 0; i < n; i++ {
			ids[i] = table[data[sel(i, filter)]-min]
		}
		return &Index{Scheme: SchemeIDs, GroupCount: int(nextGroup), GroupIDs: ids, Filter: filter}
	}

	return radixGroup(p, data, filter)
}

// radixGroup implements the unscoped radix-partitioned open-addressing
// hash (§4.3): p.SplitBy(len,0) partitions, each worker owning the
// sub-table for keys with key mod p == q, new groups minted via a single
// shared atomic counter, each row written exactly once because key mod p
// is deterministic (§4.3, §5 "Data races").
func radixGroup(p *pool.Pool, data []int64, filter []int64) *Index {
	n := selLen(len(data), filter)
	parts := p.SplitBy(n, 0)
	ids := make([]int64, n)
	counter := newAtomicCounter()

	tables := make([]map[int64]int64, parts)
	for i := range tables {
		tables[i] = make(map[int64]int64)
	}

	p.Prepare()
	for q := 0; q < parts; q++ {
		q := q
		p.AddTask(func(args ...interface{}) *value.Value {
			tab := tables[q]
			for i := 0; i < n; i++ {
				key := data[sel(i, filter)]
				if mod(key, int64(parts)) != int64(q) {
					continue
				}
				g, ok := tab[key]
				if !ok {
					g = counter.next()
					tab[key] = g
				}
				ids[i] = g
			}
			return value.AtomI64(0)
		})
	}
	p.Run()

	return &Index{Scheme: SchemeIDs, GroupCount: int(counter.get()), GroupIDs: ids, Filter: filter}
}

func mod(a, m int64) int64 {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// groupF64 always uses the unscoped radix-partitioned hash, treating the
// float bit pattern as a 64-bit key (§4.3: "F64: always the unscoped
// radix-partitioned hash").
func groupF64(p *pool.Pool, data []float64, filter []int64) *Index {
	keys := make([]int64, len(data))
	for i, f := range data {
		keys[i] = int64(float64bits(f))
	}
	return radixGroup(p, keys, filter)
}
