package aggr

import (
	"math"

	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// avgDevPartial is the shared (sums, sums_sq, counts) accumulator both Avg
// and Dev drive (§4.4: avg is "pair (sums, counts)", dev is "triple
// (sums, sums_sq, counts)" — avg simply ignores sums_sq).
func avgDevPartial(p *pool.Pool, val *value.Value, ix *index.Index) (sums, sumsSq []float64, counts []int64) {
	g := ix.GroupCount
	chunks := splitRows(p, ix)
	type partial struct {
		sums, sumsSq []float64
		counts       []int64
	}
	partials := make([]*partial, len(chunks))
	p.Prepare()
	for ci, c := range chunks {
		ci, c := ci, c
		p.AddTask(func(args ...interface{}) *value.Value {
			ps := make([]float64, g)
			pss := make([]float64, g)
			pc := make([]int64, g)
			iterRows(ix, c.Offset, c.Len, func(group, row int64) {
				f, isNull := readF64(val, row)
				if isNull {
					return
				}
				ps[group] += f
				pss[group] += f * f
				pc[group]++
			})
			partials[ci] = &partial{sums: ps, sumsSq: pss, counts: pc}
			return value.AtomI64(0)
		})
	}
	p.Run()

	sums = make([]float64, g)
	sumsSq = make([]float64, g)
	counts = make([]int64, g)
	for _, part := range partials {
		for i := 0; i < g; i++ {
			sums[i] += part.sums[i]
			sumsSq[i] += part.sumsSq[i]
			counts[i] += part.counts[i]
		}
	}
	return
}

// Avg computes the per-group mean: sum/count, NULL_F64 when count==0
// (§4.4).
func Avg(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	if ix.Scheme == index.SchemeWindow {
		return windowAvgDev(val, ix, false)
	}
	sums, _, counts := avgDevPartial(p, val, ix)
	out := make([]float64, len(sums))
	for i := range out {
		if counts[i] == 0 {
			out[i] = value.NullF64
		} else {
			out[i] = sums[i] / float64(counts[i])
		}
	}
	return value.VecF64(out)
}

// Dev computes the per-group population standard deviation: σ =
// sqrt(max(0, Σxx/n − (Σx/n)²)); n==0 -> NULL_F64, n==1 -> 0 (§4.4).
func Dev(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	if ix.Scheme == index.SchemeWindow {
		return windowAvgDev(val, ix, true)
	}
	sums, sumsSq, counts := avgDevPartial(p, val, ix)
	out := make([]float64, len(sums))
	for i := range out {
		out[i] = finalizeDev(sums[i], sumsSq[i], counts[i])
	}
	return value.VecF64(out)
}

func finalizeDev(sum, sumSq float64, n int64) float64 {
	if n == 0 {
		return value.NullF64
	}
	if n == 1 {
		return 0
	}
	mean := sum / float64(n)
	variance := sumSq/float64(n) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

func windowAvgDev(val *value.Value, ix *index.Index, dev bool) *value.Value {
	g := ix.GroupCount
	out := make([]float64, g)
	for i := 0; i < g; i++ {
		li, ri, ok := ix.Range(i)
		if !ok {
			out[i] = value.NullF64
			continue
		}
		var sum, sumSq float64
		var n int64
		for r := li; r <= ri; r++ {
			f, isNull := readF64(val, int64(r))
			if isNull {
				continue
			}
			sum += f
			sumSq += f * f
			n++
		}
		if dev {
			out[i] = finalizeDev(sum, sumSq, n)
		} else if n == 0 {
			out[i] = value.NullF64
		} else {
			out[i] = sum / float64(n)
		}
	}
	return value.VecF64(out)
}
