package runtime

import (
	"context"
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
)

// CreateTransitionFromSelection builds a transition following a user selection.
//
// A selection without sub-selections synthesizes the whole vertex. Otherwise the
// result is a sequential graph holding, in selection order, the transition of
// each selected child.
func (e *Engine) CreateTransitionFromSelection(ctx context.Context, v domain.Vertex, sel domain.Selection) (domain.Vertex, error) {
	if v.Kind() == domain.KindNode {
		return v.CloneVertex(), nil
	}

	g, ok := v.(*domain.Graph)
	if !ok {
		return nil, fmt.Errorf("vertex %q: graph kind on %T", v.ID(), v)
	}
	if sel.Selection == nil {
		return e.CreateTransition(ctx, g)
	}

	t := domain.NewGraph(domain.TransitionID(g.ID()), g.NodeData().WithType(domain.TypeTransition))
	for _, item := range sel.Selection {
		child := g.Vertex(item.ID)
		if child == nil {
			return nil, &domain.DanglingSelectionError{GraphID: g.ID(), VertexID: item.ID}
		}

		animation, err := e.CreateTransitionFromSelection(ctx, child, item)
		if err != nil {
			return nil, err
		}
		t.AddVertex(animation, animation.NodeData())
	}

	t.Pre = g.Precondition()
	t.Post = g.Postcondition()

	e.logger.Debug("selection assembled", "graph", g.ID(), "selected", len(sel.Selection))
	e.emitGraphAssembled(ctx, g, t)

	return t, nil
}
