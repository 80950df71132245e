package ops

import (
	"github.com/arrowcol/engine/core/index"
	"github.com/arrowcol/engine/core/pool"
	"github.com/arrowcol/engine/core/value"
)

// Join probes leftKey against rightKey, returning parallel row-id vectors
// (leftIds, rightIds) such that leftKey[leftIds[i]] == rightKey[rightIds[i]]
// for every i. outer selects left-outer semantics: an unmatched left row
// still appears once, paired with NULL_I64 on the right. This is the
// equi-join original_source/core/join.c implements atop the grouping
// index and find (SPEC_FULL SUPPLEMENTED FEATURES): the right side is
// grouped via index_group to bucket duplicate keys, then find locates
// each left row's matching bucket.
func Join(p *pool.Pool, leftKey, rightKey *value.Value, outer bool) (leftIds, rightIds *value.Value) {
	rightIx := index.Group(p, rightKey, nil)
	buckets := make([][]int64, rightIx.GroupCount)
	repRows := make([]int64, rightIx.GroupCount)
	seen := make([]bool, rightIx.GroupCount)
	n := rightIx.Len()
	for i := 0; i < n; i++ {
		g := rightIx.GroupOf(i)
		row := rightIx.Row(i)
		buckets[g] = append(buckets[g], row)
		if !seen[g] {
			repRows[g] = row
			seen[g] = true
		}
	}
	repKeys := value.AtIds(rightKey, repRows)

	probe := Find(repKeys, leftKey)
	groups := probe.I64()

	var outLeft, outRight []int64
	for lrow, g := range groups {
		if g == value.NullI64 {
			if outer {
				outLeft = append(outLeft, int64(lrow))
				outRight = append(outRight, value.NullI64)
			}
			continue
		}
		for _, rrow := range buckets[g] {
			outLeft = append(outLeft, int64(lrow))
			outRight = append(outRight, rrow)
		}
	}
	return value.VecI64(outLeft), value.VecI64(outRight)
}
