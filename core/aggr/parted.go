package aggr

import (
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// Op names the aggregator family PartedMap can run; each has a dedicated
// per-partition driver above plus a combine rule below (§4.4 PARTED_MAP
// path).
type Op int

const (
	OpFirst Op = iota
	OpLast
	OpSum
	OpMin
	OpMax
	OpCount
	OpAvg
)

// partedSentinelAll is the I64 atom value -1 marking "partition fully
// matches the filter" (§4.4: "sentinel: an I64 atom of value -1").
const partedSentinelAll = -1

// PartedMap drives an aggregator over a PARTEDx column under a per-
// partition filter: nil skips the partition, the -1 sentinel runs the
// whole partition under a PARTEDCOMMON (single-group) index, and a
// non-empty I64 vector first materialises at_ids(partition, filter) then
// aggregates (§4.4). When every partition contributes exactly one group
// and no filter was supplied, results fold into a single scalar via the
// same combiner used for cross-partial combination; otherwise one result
// per matching partition is returned as a LIST.
func PartedMap(p *pool.Pool, op Op, val *value.Value, partedFilter []*value.Value) *value.Value {
	parted := val.Partitions()
	results := make([]*value.Value, 0, len(parted))
	anyFilter := false

	for i, part := range parted {
		var filter *value.Value
		if i < len(partedFilter) {
			filter = partedFilter[i]
		}
		if filter == nil {
			continue
		}
		anyFilter = anyFilter || !isAllSentinel(filter)

		var target *value.Value
		if isAllSentinel(filter) {
			target = part
		} else {
			ids := filter.I64()
			if len(ids) == 0 {
				continue
			}
			target = value.AtIds(part, ids)
			if target.IsErr() {
				return target
			}
		}

		ix := &index.Index{Scheme: index.SchemePartedCommon, GroupCount: 1, GroupIDs: zeros(target.Len())}
		results = append(results, runOp(p, op, target, ix))
	}

	if !anyFilter && len(results) > 0 {
		return foldScalar(op, results)
	}
	return value.List(results)
}

func isAllSentinel(filter *value.Value) bool {
	return filter.Kind().IsAtom() && filter.Kind().Base() == value.KI64 && filter.I64()[0] == partedSentinelAll
}

func zeros(n int) []int64 { return make([]int64, n) }

func runOp(p *pool.Pool, op Op, val *value.Value, ix *index.Index) *value.Value {
	switch op {
	case OpFirst:
		return First(p, val, ix)
	case OpLast:
		return Last(p, val, ix)
	case OpSum:
		return Sum(p, val, ix)
	case OpMin:
		return Min(p, val, ix)
	case OpMax:
		return Max(p, val, ix)
	case OpCount:
		return Count(p, ix)
	case OpAvg:
		return Avg(p, val, ix)
	}
	return value.ErrValue("NOT_IMPLEMENTED", "parted aggregation op not wired")
}

// foldScalar combines one single-group result per partition into one
// overall scalar, following each aggregator's monoid (§4.4 step 4).
func foldScalar(op Op, results []*value.Value) *value.Value {
	switch op {
	case OpCount, OpSum:
		var total int64
		var totalF float64
		isF := results[0].Kind().Base() == value.KF64
		for _, r := range results {
			if isF {
				totalF += r.F64()[0]
			} else {
				total += r.I64()[0]
			}
		}
		if isF {
			return value.AtomF64(totalF)
		}
		return value.AtomI64(total)
	case OpMin, OpMax:
		best := results[0]
		for _, r := range results[1:] {
			f0, n0 := readF64(best, 0)
			f1, n1 := readF64(r, 0)
			if n1 {
				continue
			}
			if n0 || (op == OpMin && f1 < f0) || (op == OpMax && f1 > f0) {
				best = r
			}
		}
		return best
	case OpFirst:
		for _, r := range results {
			if _, isNull := readF64(r, 0); !isNull {
				return r
			}
		}
		return results[0]
	case OpLast:
		for i := len(results) - 1; i >= 0; i-- {
			if _, isNull := readF64(results[i], 0); !isNull {
				return results[i]
			}
		}
		return results[len(results)-1]
	case OpAvg:
		var sum float64
		for _, r := range results {
			sum += r.F64()[0]
		}
		return value.AtomF64(sum / float64(len(results)))
	}
	return results[0]
}
