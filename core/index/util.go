package index

import (
	"math"
	"sync/atomic"
)

func float64bits(f float64) uint64 { return math.Float64bits(f) }

// atomicCounter is the relaxed fetch-add counter minting group ids during
// radix-partitioned grouping (§4.3, §5: "updated via relaxed atomic
// fetch-add").
type atomicCounter struct{ n int64 }

func newAtomicCounter() *atomicCounter { return &atomicCounter{} }

func (c *atomicCounter) next() int64 {
	return atomic.AddInt64(&c.n, 1) - 1
}

func (c *atomicCounter) get() int64 {
	return atomic.LoadInt64(&c.n)
}
