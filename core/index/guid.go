package index

import (
	"github.com/spaolacci/murmur3"

	"github.com/arrowcol/engine/core/value"
)

// groupGUID builds a hash table keyed by the 128-bit GUID, mixed down to a
// 64-bit bucket via murmur3 (§4.3: "GUID: hash table keyed by the 128-bit
// GUID with a 64-bit mixing hash").
func groupGUID(data []value.GUID, filter []int64) *Index {
	n := selLen(len(data), filter)
	ids := make([]int64, n)
	seen := make(map[uint64][]int64) // hash -> group ids sharing that bucket (collision chain)
	byGroup := make([]value.GUID, 0, n)
	nextGroup := int64(0)

	for i := 0; i < n; i++ {
		g := data[sel(i, filter)]
		h := murmur3.Sum64(g[:])
		bucket := seen[h]
		found := int64(-1)
		for _, gid := range bucket {
			if byGroup[gid] == g {
				found = gid
				break
			}
		}
		if found == -1 {
			found = nextGroup
			byGroup = append(byGroup, g)
			seen[h] = append(bucket, found)
			nextGroup++
		}
		ids[i] = found
	}

	return &Index{Scheme: SchemeIDs, GroupCount: int(nextGroup), GroupIDs: ids, Filter: filter}
}
