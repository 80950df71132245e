package ops

import "github.com/arrowcol/engine/core/value"

// Iasc returns the permutation that sorts x ascending (stable, so equal
// elements keep source order) — §4.7: "iasc returns the permutation
// itself."
func Iasc(x *value.Value) *value.Value {
	n := x.Len()
	perm := make([]int64, n)
	for i := range perm {
		perm[i] = int64(i)
	}
	stableSortPerm(perm, func(a, b int64) bool { return less(x, int(a), int(b)) })
	return value.VecI64(perm)
}

// Idesc returns the permutation that sorts x descending.
func Idesc(x *value.Value) *value.Value {
	n := x.Len()
	perm := make([]int64, n)
	for i := range perm {
		perm[i] = int64(i)
	}
	stableSortPerm(perm, func(a, b int64) bool { return less(x, int(b), int(a)) })
	return value.VecI64(perm)
}

// Asc sorts x ascending. If ATTR_ASC is already set it returns a retained
// clone; if ATTR_DESC is set it reverses without a full re-sort; otherwise
// it computes iasc and permutes (§4.7).
func Asc(x *value.Value) *value.Value {
	if x.Attr()&value.AttrAsc != 0 {
		c := value.Clone(x)
		c.SetAttr(value.AttrAsc)
		return c
	}
	if x.Attr()&value.AttrDesc != 0 {
		n := x.Len()
		ids := make([]int64, n)
		for i := 0; i < n; i++ {
			ids[i] = int64(n - 1 - i)
		}
		out := value.AtIds(x, ids)
		out.SetAttr(value.AttrAsc)
		return out
	}
	perm := Iasc(x).I64()
	out := value.AtIds(x, perm)
	out.SetAttr(value.AttrAsc)
	return out
}

// Desc sorts x descending, the mirror of Asc.
func Desc(x *value.Value) *value.Value {
	if x.Attr()&value.AttrDesc != 0 {
		c := value.Clone(x)
		c.SetAttr(value.AttrDesc)
		return c
	}
	if x.Attr()&value.AttrAsc != 0 {
		n := x.Len()
		ids := make([]int64, n)
		for i := 0; i < n; i++ {
			ids[i] = int64(n - 1 - i)
		}
		out := value.AtIds(x, ids)
		out.SetAttr(value.AttrDesc)
		return out
	}
	perm := Idesc(x).I64()
	out := value.AtIds(x, perm)
	out.SetAttr(value.AttrDesc)
	return out
}

// stableSortPerm sorts perm into order via a simple stable merge sort,
// shared by Iasc, Idesc and SortBy so none of them needs its own
// sort.Interface boilerplate.
func stableSortPerm(data []int64, lessFn func(a, b int64) bool) {
	n := len(data)
	if n < 2 {
		return
	}
	buf := make([]int64, n)
	src, dst := data, buf
	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			mid := i + width
			if mid > n {
				mid = n
			}
			end := i + 2*width
			if end > n {
				end = n
			}
			merge(src, dst, i, mid, end, lessFn)
		}
		src, dst = dst, src
	}
	// src now holds the fully sorted sequence; copy back into the
	// caller's backing array if the final pass landed in buf.
	if &src[0] != &data[0] {
		copy(data, src)
	}
}

func merge(src, dst []int64, lo, mid, hi int, lessFn func(a, b int64) bool) {
	i, j := lo, mid
	for k := lo; k < hi; k++ {
		if i < mid && (j >= hi || !lessFn(src[j], src[i])) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
	}
}
