package aggr

import (
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// Count returns the per-group row count, including null rows — count is
// of rows, not of non-nulls (§4.4: "count: add counts").
func Count(p *pool.Pool, ix *index.Index) *value.Value {
	if ix.Scheme == index.SchemeWindow {
		out := make([]int64, ix.GroupCount)
		for i := range out {
			li, ri, ok := ix.Range(i)
			if ok {
				out[i] = int64(ri - li + 1)
			}
		}
		return value.VecI64(out)
	}

	g := ix.GroupCount
	chunks := splitRows(p, ix)
	partials := make([][]int64, len(chunks))
	p.Prepare()
	for ci, c := range chunks {
		ci, c := ci, c
		p.AddTask(func(args ...interface{}) *value.Value {
			pc := make([]int64, g)
			iterRows(ix, c.Offset, c.Len, func(group, row int64) { pc[group]++ })
			partials[ci] = pc
			return value.AtomI64(0)
		})
	}
	p.Run()

	out := make([]int64, g)
	for _, pc := range partials {
		for i := 0; i < g; i++ {
			out[i] += pc[i]
		}
	}
	return value.VecI64(out)
}

// Sum adds non-null values per group; a group with only nulls sums to 0
// (§4.4: "sum: add across partials; nulls contribute 0", and §8 "Null
// preservation").
func Sum(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	resultKind := sumResultKind(val)
	if ix.Scheme == index.SchemeWindow {
		out := make([]float64, ix.GroupCount)
		for i := 0; i < ix.GroupCount; i++ {
			li, ri, ok := ix.Range(i)
			if !ok {
				out[i] = 0
				continue
			}
			var s float64
			for r := li; r <= ri; r++ {
				f, isNull := readF64(val, int64(r))
				if !isNull {
					s += f
				}
			}
			out[i] = s
		}
		return finalizeSum(resultKind, out)
	}

	g := ix.GroupCount
	chunks := splitRows(p, ix)
	partials := make([][]float64, len(chunks))
	p.Prepare()
	for ci, c := range chunks {
		ci, c := ci, c
		p.AddTask(func(args ...interface{}) *value.Value {
			ps := make([]float64, g)
			iterRows(ix, c.Offset, c.Len, func(group, row int64) {
				f, isNull := readF64(val, row)
				if !isNull {
					ps[group] += f
				}
			})
			partials[ci] = ps
			return value.AtomI64(0)
		})
	}
	p.Run()

	out := make([]float64, g)
	for _, ps := range partials {
		for i := 0; i < g; i++ {
			out[i] += ps[i]
		}
	}
	return finalizeSum(resultKind, out)
}

func finalizeSum(k value.Kind, sums []float64) *value.Value {
	if k == value.KF64 {
		return value.VecF64(sums)
	}
	out := make([]int64, len(sums))
	for i, s := range sums {
		out[i] = int64(s)
	}
	return value.VecI64(out)
}

// Min returns the per-group minimum, ignoring nulls (§4.4: "min/max: take
// extremum, ignoring nulls").
func Min(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	return minMax(p, val, ix, true)
}

// Max returns the per-group maximum, ignoring nulls.
func Max(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	return minMax(p, val, ix, false)
}

func minMax(p *pool.Pool, val *value.Value, ix *index.Index, wantMin bool) *value.Value {
	if ix.Scheme == index.SchemeWindow {
		g := ix.GroupCount
		out := make([]float64, g)
		seen := make([]bool, g)
		for i := 0; i < g; i++ {
			li, ri, ok := ix.Range(i)
			if !ok {
				continue
			}
			for r := li; r <= ri; r++ {
				f, isNull := readF64(val, int64(r))
				if isNull {
					continue
				}
				if !seen[i] || (wantMin && f < out[i]) || (!wantMin && f > out[i]) {
					out[i] = f
					seen[i] = true
				}
			}
		}
		return buildTyped(val.Kind().Base(), out, seen)
	}

	g := ix.GroupCount
	chunks := splitRows(p, ix)
	type partial struct {
		vals []float64
		seen []bool
	}
	partials := make([]*partial, len(chunks))
	p.Prepare()
	for ci, c := range chunks {
		ci, c := ci, c
		p.AddTask(func(args ...interface{}) *value.Value {
			pv := make([]float64, g)
			pseen := make([]bool, g)
			iterRows(ix, c.Offset, c.Len, func(group, row int64) {
				f, isNull := readF64(val, row)
				if isNull {
					return
				}
				if !pseen[group] || (wantMin && f < pv[group]) || (!wantMin && f > pv[group]) {
					pv[group] = f
					pseen[group] = true
				}
			})
			partials[ci] = &partial{vals: pv, seen: pseen}
			return value.AtomI64(0)
		})
	}
	p.Run()

	out := make([]float64, g)
	seen := make([]bool, g)
	for _, part := range partials {
		for i := 0; i < g; i++ {
			if !part.seen[i] {
				continue
			}
			if !seen[i] || (wantMin && part.vals[i] < out[i]) || (!wantMin && part.vals[i] > out[i]) {
				out[i] = part.vals[i]
				seen[i] = true
			}
		}
	}
	return buildTyped(val.Kind().Base(), out, seen)
}
