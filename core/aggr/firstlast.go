package aggr

import (
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// First returns the earliest non-null value per group: null inputs are
// skipped and a per-group seen flag marks filled slots, which gives the
// documented quirk from §9:
// "Inputs whose first value is the typed null will pick the next non-null
// instead." This is the observed/preserved behaviour, not a bug to fix.
func First(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	return firstLast(p, val, ix, true)
}

// Last returns the latest non-null value per group (§4.4: "keep the
// latest non-null"): a later non-null input overwrites the previous cell.
// Only scalar column kinds are handled; a LIST column yields a TYPE error.
func Last(p *pool.Pool, val *value.Value, ix *index.Index) *value.Value {
	return firstLast(p, val, ix, false)
}

func firstLast(p *pool.Pool, val *value.Value, ix *index.Index, first bool) *value.Value {
	switch ix.Scheme {
	case index.SchemeWindow:
		return windowFirstLast(val, ix, first)
	}

	g := ix.GroupCount
	sums := make([]float64, g)
	seen := make([]bool, g)
	for i := range sums {
		sums[i] = value.NullF64
	}

	chunks := splitRows(p, ix)
	type partial struct {
		sums []float64
		seen []bool
	}
	partials := make([]*partial, len(chunks))

	p.Prepare()
	for ci, c := range chunks {
		ci, c := ci, c
		p.AddTask(func(args ...interface{}) *value.Value {
			ps := make([]float64, g)
			pseen := make([]bool, g)
			iterRows(ix, c.Offset, c.Len, func(group, row int64) {
				f, isNull := readF64(val, row)
				if isNull {
					return
				}
				if first && pseen[group] {
					return
				}
				ps[group] = f
				pseen[group] = true
			})
			partials[ci] = &partial{sums: ps, seen: pseen}
			return value.AtomI64(0)
		})
	}
	p.Run()

	for _, part := range partials {
		for i := 0; i < g; i++ {
			if !part.seen[i] {
				continue
			}
			if first {
				if !seen[i] {
					sums[i] = part.sums[i]
					seen[i] = true
				}
			} else {
				sums[i] = part.sums[i]
				seen[i] = true
			}
		}
	}

	return buildTyped(val.Kind().Base(), sums, seen)
}

func windowFirstLast(val *value.Value, ix *index.Index, first bool) *value.Value {
	g := ix.GroupCount
	out := make([]float64, g)
	ok := make([]bool, g)
	for i := 0; i < g; i++ {
		li, ri, has := ix.Range(i)
		if !has {
			out[i] = value.NullF64
			continue
		}
		found := false
		if first {
			for r := li; r <= ri; r++ {
				f, isNull := readF64(val, int64(r))
				if !isNull {
					out[i] = f
					found = true
					break
				}
			}
		} else {
			for r := ri; r >= li; r-- {
				f, isNull := readF64(val, int64(r))
				if !isNull {
					out[i] = f
					found = true
					break
				}
			}
		}
		if !found {
			out[i] = value.NullF64
		}
		ok[i] = true
	}
	return buildTyped(val.Kind().Base(), out, ok)
}

// buildTyped materialises an F64 accumulator buffer back into the
// column's original kind, writing the kind's typed null where !seen.
func buildTyped(k value.Kind, data []float64, seen []bool) *value.Value {
	switch k {
	case value.KF64:
		out := make([]float64, len(data))
		for i, f := range data {
			if seen[i] {
				out[i] = f
			} else {
				out[i] = value.NullF64
			}
		}
		return value.VecF64(out)
	case value.KI64, value.KTimestamp, value.KSymbol:
		out := make([]int64, len(data))
		for i, f := range data {
			if seen[i] {
				out[i] = int64(f)
			} else {
				out[i] = value.NullI64
			}
		}
		return wrapI64(k, out)
	case value.KI32, value.KDate, value.KTime:
		out := make([]int32, len(data))
		for i, f := range data {
			if seen[i] {
				out[i] = int32(f)
			} else {
				out[i] = value.NullI32
			}
		}
		return wrapI32(k, out)
	case value.KI16:
		out := make([]int16, len(data))
		for i, f := range data {
			if seen[i] {
				out[i] = int16(f)
			} else {
				out[i] = value.NullI16
			}
		}
		return value.VecI16(out)
	case value.KB8, value.KU8, value.KC8:
		out := make([]uint8, len(data))
		for i, f := range data {
			if seen[i] {
				out[i] = uint8(f)
			}
		}
		return wrapB8(k, out)
	}
	return value.ErrValue("TYPE", "aggr: unsupported kind "+k.String())
}

func wrapI64(k value.Kind, data []int64) *value.Value {
	switch k {
	case value.KTimestamp:
		return value.VecTimestamp(data)
	case value.KSymbol:
		return value.VecSymbol(data)
	default:
		return value.VecI64(data)
	}
}

func wrapI32(k value.Kind, data []int32) *value.Value {
	switch k {
	case value.KDate:
		return value.VecDate(data)
	case value.KTime:
		return value.VecTime(data)
	default:
		return value.VecI32(data)
	}
}

func wrapB8(k value.Kind, data []uint8) *value.Value {
	switch k {
	case value.KU8:
		return value.VecU8(data)
	case value.KC8:
		return value.VecC8(data)
	default:
		return value.VecB8(data)
	}
}
