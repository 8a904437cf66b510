package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// CreateTransition synthesizes the transition graph for a vertex.
//
// Leaf nodes are returned as clones. A graph becomes a parallel graph whose first
// vertex restores the source's final state and whose remaining vertices replay
// one synthesized primitive per traced root output, all starting together.
func (e *Engine) CreateTransition(ctx context.Context, v domain.Vertex) (domain.Vertex, error) {
	switch v.Kind() {
	case domain.KindNode:
		return v.CloneVertex(), nil
	case domain.KindGraph:
		g, ok := v.(*domain.Graph)
		if !ok {
			return nil, fmt.Errorf("vertex %q: graph kind on %T", v.ID(), v)
		}
		return e.transitionGraph(ctx, g)
	default:
		return nil, fmt.Errorf("vertex %q: unknown kind %s", v.ID(), v.Kind())
	}
}

func (e *Engine) transitionGraph(ctx context.Context, g *domain.Graph) (*domain.Graph, error) {
	chains, err := e.Trace(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("trace %q: %w", g.ID(), err)
	}

	nodes, err := e.Synthesize(ctx, g.ID(), chains)
	if err != nil {
		return nil, fmt.Errorf("synthesize %q: %w", g.ID(), err)
	}

	data := g.NodeData()
	t := domain.NewGraph(domain.TransitionID(g.ID()), data.WithType(domain.TypeTransition))

	baseline := g.Postcondition()
	if last := g.Last(); last != nil && last.Postcondition() != nil {
		baseline = last.Postcondition()
	}
	t.AddVertex(primitive.NewInitialize(g.ID(), baseline.Clone()), data.WithType(domain.TypeTransitionAnimation))

	for _, n := range nodes {
		t.AddVertex(n, data.WithType(domain.TypeTransitionPrimitive))
	}

	t.IsParallel = true
	t.ParallelStarts = make([]int, len(t.Vertices))
	for i := 1; i < len(t.ParallelStarts); i++ {
		t.ParallelStarts[i] = 1
	}

	// Shared, not copied: the transition spans exactly the source's states.
	t.Pre = g.Precondition()
	t.Post = g.Postcondition()

	e.logger.Debug("transition assembled",
		"graph", g.ID(),
		"transition", t.ID(),
		"chains", len(chains),
		"primitives", len(nodes),
		"duration", t.Duration())
	e.emitGraphAssembled(ctx, g, t)

	return t, nil
}
