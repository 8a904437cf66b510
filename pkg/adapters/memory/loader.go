package memory

import (
	"context"
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
)

// Loader serves a graph held in memory. Useful for tests and embedding, where
// the baked graph is built in code rather than read from a file.
type Loader struct {
	graph     *domain.Graph
	selection *domain.Selection
}

var (
	_ ports.GraphLoader     = (*Loader)(nil)
	_ ports.SelectionLoader = (*Loader)(nil)
)

// NewLoader creates a loader over g. A nil selection means none is stored.
func NewLoader(g *domain.Graph, sel *domain.Selection) (*Loader, error) {
	if g == nil {
		return nil, fmt.Errorf("memory loader: nil graph")
	}
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("memory loader: %w", err)
	}
	return &Loader{graph: g.Clone(), selection: sel}, nil
}

// LoadGraph returns a deep copy of the stored graph.
func (l *Loader) LoadGraph(context.Context) (*domain.Graph, error) {
	return l.graph.Clone(), nil
}

// LoadSelection returns the stored selection.
func (l *Loader) LoadSelection(context.Context) (*domain.Selection, error) {
	return l.selection, nil
}
