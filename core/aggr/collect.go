package aggr

import (
	"sort"

	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// Collect gathers every row of val into its group, preserving source
// order — a LIST of group_count vectors (§4.4: "collect / row: LIST of g
// vectors, each grown via push").
func Collect(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	g := ix.GroupCount

	if ix.Scheme == index.SchemeWindow {
		out := make([]*value.Value, g)
		for i := 0; i < g; i++ {
			li, ri, ok := ix.Range(i)
			if !ok {
				out[i] = value.AtIds(val, nil)
				continue
			}
			ids := make([]int64, ri-li+1)
			for r := li; r <= ri; r++ {
				ids[r-li] = int64(r)
			}
			out[i] = value.AtIds(val, ids)
		}
		return value.List(out)
	}

	buckets := make([][]int64, g)
	n := ix.Len()
	for i := 0; i < n; i++ {
		group := ix.GroupOf(i)
		row := ix.Row(i)
		buckets[group] = append(buckets[group], row)
	}
	out := make([]*value.Value, g)
	for i, ids := range buckets {
		out[i] = value.AtIds(val, ids)
	}
	return value.List(out)
}

// Row gathers each group's contributing source-row numbers (the `i`
// aggregator), rather than the column's values — useful to materialise
// "which original rows fed this group" (§4.4 "row").
func Row(p *pool.Pool, ix *index.Index) *value.Value {
	g := ix.GroupCount
	buckets := make([][]int64, g)
	n := ix.Len()
	for i := 0; i < n; i++ {
		group := ix.GroupOf(i)
		row := ix.Row(i)
		buckets[group] = append(buckets[group], row)
	}
	out := make([]*value.Value, g)
	for i, ids := range buckets {
		out[i] = value.VecI64(ids)
	}
	return value.List(out)
}

// Med computes the per-group median by sorting Collect's per-group output
// and picking the middle element (or averaging the two middles) — §4.4:
// "med: operates on the output of collect (sort each group, pick the
// middle or mean of the two middles)".
func Med(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	collected := Collect(p, val, ix)
	out := make([]float64, len(collected.List()))
	for i, group := range collected.List() {
		out[i] = medianOf(group)
	}
	return value.VecF64(out)
}

func medianOf(group *value.Value) float64 {
	n := group.Len()
	vals := make([]float64, 0, n)
	for r := 0; r < n; r++ {
		f, isNull := readF64(group, int64(r))
		if !isNull {
			vals = append(vals, f)
		}
	}
	if len(vals) == 0 {
		return value.NullF64
	}
	sort.Float64s(vals)
	mid := len(vals) / 2
	if len(vals)%2 == 1 {
		return vals[mid]
	}
	return (vals[mid-1] + vals[mid]) / 2
}
