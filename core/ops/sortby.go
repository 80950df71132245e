package ops

import "github.com/arrowcol/engine/core/value"

// SortBy generalizes asc/desc to a composite-key comparator over several
// columns, grounded in original_source/core/order.c's xdesc/grouped
// order-by (SPEC_FULL SUPPLEMENTED FEATURES). descs[i] selects descending
// order for cols[i]; ties fall through to the next column, then to row
// index for a stable result.
func SortBy(cols []*value.Value, descs []bool) *value.Value {
	if len(cols) == 0 {
		return value.VecI64(nil)
	}
	n := cols[0].Len()
	perm := make([]int64, n)
	for i := range perm {
		perm[i] = int64(i)
	}
	stableSortPerm(perm, func(a, b int64) bool {
		for c, col := range cols {
			desc := c < len(descs) && descs[c]
			switch {
			case less(col, int(a), int(b)):
				return !desc
			case less(col, int(b), int(a)):
				return desc
			}
		}
		return false
	})
	return value.VecI64(perm)
}
