package ports

import (
	"context"

	"github.com/aretw0/montage/pkg/domain"
)

// GraphLoader defines how the engine retrieves a baked animation graph.
// This allows the source (fixture files, memory) to be decoupled.
type GraphLoader interface {
	// LoadGraph returns the graph to synthesize from. Each call returns a fresh
	// graph the caller may keep.
	LoadGraph(ctx context.Context) (*domain.Graph, error)
}

// SelectionLoader is implemented by loaders whose source also stores a selection.
type SelectionLoader interface {
	// LoadSelection returns the stored selection, or nil when the source has none.
	LoadSelection(ctx context.Context) (*domain.Selection, error)
}
