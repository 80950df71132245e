// Package aggr implements the aggregation engine: partial kernels plus
// parallel partial+final drivers for first/last/sum/min/max/count/avg/
// med/dev/collect/row over a grouping Index (§4.4).
package aggr

import (
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// readF64 reads table column val at source row and reports whether it was
// the column's typed null (§4.4 null rules).
func readF64(val *value.Value, row int64) (float64, bool) {
	switch val.Kind().Base() {
	case value.KB8, value.KU8, value.KC8:
		return float64(val.B8()[row]), false
	case value.KI16:
		x := val.I16()[row]
		return float64(x), x == value.NullI16
	case value.KI32, value.KDate, value.KTime:
		x := val.I32()[row]
		return float64(x), x == value.NullI32
	case value.KI64, value.KTimestamp, value.KSymbol, value.KEnum:
		x := val.I64()[row]
		return float64(x), x == value.NullI64
	case value.KF64:
		x := val.F64()[row]
		return x, value.IsNullF64(x)
	}
	return 0, true
}

// sumResultKind picks the output kind for sum/avg-family aggregations:
// F64 columns stay F64; every integer-family column widens to I64 to
// avoid overflow, matching §4.2's "mixed integer widths promote to the
// wider signed integer" applied to accumulation.
func sumResultKind(val *value.Value) value.Kind {
	if val.Kind().Base() == value.KF64 {
		return value.KF64
	}
	return value.KI64
}

// rowIter describes one contributing (outputGroup, sourceRow) pair under
// the IDS/SHIFT schemes.
type rowIter struct {
	group int64
	row   int64
}

// iterRows walks index rows [offset, offset+length) yielding (group,
// sourceRow) pairs, used by the IDS/SHIFT partial kernels (§4.3, §4.4).
func iterRows(ix *index.Index, offset, length int, yield func(group, row int64)) {
	for i := offset; i < offset+length; i++ {
		yield(ix.GroupOf(i), ix.Row(i))
	}
}

// splitRows returns the chunk boundaries pool.SplitBy picks for an
// IDS/SHIFT-scheme Index of the given length.
func splitRows(p *pool.Pool, ix *index.Index) []struct{ Offset, Len int } {
	n := ix.Len()
	nchunks := p.SplitBy(n, ix.GroupCount)
	return pool.Chunks(n, nchunks, 8)
}
