package ports

import (
	"context"

	"github.com/aretw0/montage/pkg/domain"
)

// Synthesizer defines the stateless synthesis surface.
// This is the interface used by adapters (e.g., HTTP, MCP) that decode graphs per request.
type Synthesizer interface {
	// Trace extracts one trace chain per root output of a baked graph.
	Trace(ctx context.Context, g *domain.Graph) ([]*domain.TraceChain, error)

	// CreateTransition synthesizes the transition graph of a vertex.
	CreateTransition(ctx context.Context, v domain.Vertex) (domain.Vertex, error)

	// CreateTransitionFromSelection synthesizes only the selected parts of a vertex.
	CreateTransitionFromSelection(ctx context.Context, v domain.Vertex, sel domain.Selection) (domain.Vertex, error)
}
