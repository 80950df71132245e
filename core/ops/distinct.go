package ops

import (
	"github.com/pilosa/pilosa/roaring"
	"github.com/spaolacci/murmur3"

	"github.com/arrowcol/engine/core/value"
)

// distinctScopeLimit bounds the roaring-bitmap presence path: above this
// range, membership testing degrades to per-bit scans on a sparse range,
// so distinct falls back to the open-addressing hash-set (§4.7: "for
// bounded-range integers use a presence bitmap; otherwise an
// open-addressing hash-set").
const distinctScopeLimit = 1 << 24

// Distinct returns the first occurrence of each unique element of x, in
// source order (§4.7).
func Distinct(x *value.Value) *value.Value {
	if keys, ok := intKey(x); ok {
		if ids, ok := distinctBitmap(keys); ok {
			return value.AtIds(x, ids)
		}
	}
	return distinctHashSet(x)
}

// distinctBitmap uses a roaring bitmap as the presence set when the key
// range is small enough to be worth tracking densely; it returns ok=false
// to signal "range too wide, use the hash-set path instead" rather than
// building a bitmap over a sparse, wide domain.
func distinctBitmap(keys []int64) (ids []int64, ok bool) {
	if len(keys) == 0 {
		return nil, true
	}
	min, max := keys[0], keys[0]
	for _, k := range keys {
		if k < min {
			min = k
		}
		if k > max {
			max = k
		}
	}
	rng := max - min + 1
	if rng <= 0 || rng > distinctScopeLimit {
		return nil, false
	}

	seen := roaring.NewBitmap()
	out := make([]int64, 0, len(keys))
	for i, k := range keys {
		bit := uint64(k - min)
		if seen.Contains(bit) {
			continue
		}
		seen.Add(bit)
		out = append(out, int64(i))
	}
	return out, true
}

// distinctHashSet is the generic fallback: an open-addressing hash-set
// keyed by a murmur3 hash of the element's Go-native representation, with
// an equality check on collision (§4.7).
func distinctHashSet(x *value.Value) *value.Value {
	n := x.Len()
	buckets := make(map[uint64][]int)
	ids := make([]int64, 0, n)

	for i := 0; i < n; i++ {
		h := hashElem(x, i)
		bucket := buckets[h]
		dup := false
		for _, j := range bucket {
			if equal(x, i, j) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[h] = append(bucket, i)
		ids = append(ids, int64(i))
	}
	return value.AtIds(x, ids)
}

// hashElem mixes an element's identity key through murmur3, matching the
// engine's GUID-grouping use of murmur3 as the general 64-bit mixing hash
// (§4.3 GUID keys, reused here for the open-addressing set).
func hashElem(x *value.Value, i int) uint64 {
	switch k := elemHash64(x, i).(type) {
	case uint8:
		return murmur3.Sum64([]byte{k})
	case int16:
		return murmur3.Sum64(encodeI64(int64(k)))
	case int32:
		return murmur3.Sum64(encodeI64(int64(k)))
	case int64:
		return murmur3.Sum64(encodeI64(k))
	case uint64:
		return murmur3.Sum64(encodeI64(int64(k)))
	case value.GUID:
		return murmur3.Sum64(k[:])
	}
	return 0
}

func encodeI64(v int64) []byte {
	var b [8]byte
	u := uint64(v)
	for i := 0; i < 8; i++ {
		b[i] = byte(u >> (8 * i))
	}
	return b[:]
}

