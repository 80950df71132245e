package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arrowcol/engine/core/value"
)

func TestSplitBySmallWork(t *testing.T) {
	require := require.New(t)
	p := New(8)
	require.Equal(1, p.SplitBy(100, 0))
}

func TestSplitByCapsAtExecutors(t *testing.T) {
	require := require.New(t)
	p := New(4)
	n := p.SplitBy(10_000_000, 0)
	require.LessOrEqual(n, 4)
	require.Greater(n, 1)
}

func TestSplitByCapsAtGroupCount(t *testing.T) {
	require := require.New(t)
	p := New(8)
	n := p.SplitBy(10_000_000, 2)
	require.LessOrEqual(n, 2)
}

func TestRunPreservesOrderAndShortCircuitsOnErr(t *testing.T) {
	require := require.New(t)
	p := New(4)
	p.Prepare()
	p.AddTask(func(args ...interface{}) *value.Value { return value.AtomI64(1) })
	p.AddTask(func(args ...interface{}) *value.Value { return value.ErrValue("TYPE", "boom") })
	p.AddTask(func(args ...interface{}) *value.Value { return value.AtomI64(3) })

	res := p.Run()
	require.True(res.IsErr())
	require.Equal("boom", res.Err().Message)
}

func TestRunOrdersResults(t *testing.T) {
	require := require.New(t)
	p := New(4)
	p.Prepare()
	for i := int64(0); i < 6; i++ {
		i := i
		p.AddTask(func(args ...interface{}) *value.Value { return value.AtomI64(i) })
	}
	res := p.Run()
	require.False(res.IsErr())
	for i, el := range res.List() {
		require.Equal(int64(i), el.I64()[0])
	}
}

func TestChunksCoverWholeRange(t *testing.T) {
	require := require.New(t)
	chunks := Chunks(100, 3, 8)
	total := 0
	for _, c := range chunks {
		total += c.Len
	}
	require.Equal(100, total)
}
