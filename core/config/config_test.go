package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	require := require.New(t)
	c, err := Parse(`
executors = 4
min_chunk = 2048
scope_limit = 1000000
`)
	require.NoError(err)
	require.Equal(4, c.Executors)
	require.Equal(2048, c.MinChunk)
	require.EqualValues(1000000, c.ScopeLimit)
}

func TestDefaultIsZeroValue(t *testing.T) {
	require := require.New(t)
	c := Default()
	require.Equal(0, c.Executors)
}

func TestOverrideCoercesLooselyTypedValues(t *testing.T) {
	require := require.New(t)
	c := Default().Override(map[string]interface{}{
		"executors":   "8",
		"min_chunk":   4096,
		"scope_limit": "500000",
	})
	require.Equal(8, c.Executors)
	require.Equal(4096, c.MinChunk)
	require.EqualValues(500000, c.ScopeLimit)
}
