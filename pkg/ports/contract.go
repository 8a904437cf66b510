package ports

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunGraphLoaderContract runs a suite of tests to verify that a GraphLoader
// implementation adheres to the defined interface contract.
func RunGraphLoaderContract(t *testing.T, loader GraphLoader, wantID string) {
	ctx := context.Background()

	t.Run("Load", func(t *testing.T) {
		g, err := loader.LoadGraph(ctx)
		require.NoError(t, err, "LoadGraph should not return error")
		require.NotNil(t, g)
		assert.Equal(t, wantID, g.ID())
		assert.NoError(t, g.Validate())
	})

	t.Run("Fresh Copies", func(t *testing.T) {
		a, err := loader.LoadGraph(ctx)
		require.NoError(t, err)
		b, err := loader.LoadGraph(ctx)
		require.NoError(t, err)

		assert.NotSame(t, a, b, "each load must return a graph the caller owns")
		n := len(b.Vertices)
		a.Vertices = nil
		assert.Len(t, b.Vertices, n)
	})

	if sl, ok := loader.(SelectionLoader); ok {
		t.Run("Selection", func(t *testing.T) {
			first, err := sl.LoadSelection(ctx)
			require.NoError(t, err)
			second, err := sl.LoadSelection(ctx)
			require.NoError(t, err)
			assert.Equal(t, first, second, "selection must be stable across loads")
		})
	}
}
