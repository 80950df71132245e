package index

import "sort"

// BuildWindow constructs a WINDOW-scheme Index from explicit per-output-row
// boundaries, the shape an as-of/sliding-window join computes before
// handing off to the aggregation engine (§3.4, §4.3.2).
func BuildWindow(meta *WindowMeta) *Index {
	return &Index{Scheme: SchemeWindow, GroupCount: len(meta.KL), Window: meta}
}

// Range resolves output row i to a contiguous source-row range [li, ri]
// via binary search into SourceKeys[fi..=ti] (§4.3.2, concrete scenario 4:
// source_keys=[1,3,5,7,9], window (kl=2, kr=6, fi=0, ti=4), left-closed ->
// li=1, ri=2, contributing rows with values 3 and 5). ok is false when the
// range is empty, meaning the aggregator should emit its null for this
// row.
func (ix *Index) Range(i int) (li, ri int, ok bool) {
	w := ix.Window
	fi, ti := int(w.FI[i]), int(w.TI[i])
	keys := w.SourceKeys.I64()
	window := keys[fi : ti+1]

	var liIdx int
	if w.LeftOpen {
		liIdx = upperBound(window, w.KL[i]) // exclude rows equal to kl
	} else {
		liIdx = lowerBound(window, w.KL[i]) // include rows equal to kl
	}
	riIdx := upperBound(window, w.KR[i]) - 1

	if liIdx > riIdx || liIdx >= len(window) {
		return 0, 0, false
	}
	return fi + liIdx, fi + riIdx, true
}

// lowerBound returns the first index with keys[idx] >= key.
func lowerBound(keys []int64, key int64) int {
	return sort.Search(len(keys), func(i int) bool { return keys[i] >= key })
}

// upperBound returns the first index with keys[idx] > key.
func upperBound(keys []int64, key int64) int {
	return sort.Search(len(keys), func(i int) bool { return keys[i] > key })
}
