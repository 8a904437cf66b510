package validator

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
)

// ValidateGraph checks that g can be synthesized: vertex ids are unique, parallel
// graphs are well formed and every leaf node was baked. All problems are reported
// together.
func ValidateGraph(g *domain.Graph) error {
	var errs []error
	seen := make(map[string]bool)

	// Breadth-first so issues are listed from the outside in.
	queue := []domain.Vertex{g}
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		if v.ID() == "" {
			errs = append(errs, &Issue{Reason: "missing id"})
		} else if seen[v.ID()] {
			errs = append(errs, &Issue{VertexID: v.ID(), Reason: "duplicate id"})
		}
		seen[v.ID()] = true

		switch v.Kind() {
		case domain.KindGraph:
			child := v.(*domain.Graph)
			errs = append(errs, parallelIssues(child)...)
			queue = append(queue, child.Vertices...)
		case domain.KindNode:
			n := v.(domain.Node)
			if !n.Baked() {
				errs = append(errs, &Issue{VertexID: n.ID(), Reason: "not baked: reads and writes were never recorded"})
				continue
			}
			if _, ok := n.(domain.Traced); ok && len(n.Writes()) == 0 && len(n.Reads()) > 0 {
				errs = append(errs, &Issue{VertexID: n.ID(), Reason: "traced node reads values but writes none"})
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func parallelIssues(g *domain.Graph) []error {
	if !g.IsParallel {
		if len(g.ParallelStarts) > 0 {
			return []error{&Issue{VertexID: g.ID(), Reason: "parallel starts on a sequential graph"}}
		}
		return nil
	}

	var errs []error
	if len(g.ParallelStarts) != len(g.Vertices) {
		errs = append(errs, &Issue{
			VertexID: g.ID(),
			Reason:   fmt.Sprintf("%d parallel starts for %d vertices", len(g.ParallelStarts), len(g.Vertices)),
		})
	}
	for i, s := range g.ParallelStarts {
		if s < 0 {
			errs = append(errs, &Issue{VertexID: g.ID(), Reason: fmt.Sprintf("negative parallel start %d at vertex %d", s, i)})
		}
	}
	return errs
}

// ValidateSelection checks that every id a selection names exists where it is named.
func ValidateSelection(v domain.Vertex, sel domain.Selection) error {
	var errs []error
	collectDangling(v, sel, &errs)
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func collectDangling(v domain.Vertex, sel domain.Selection, errs *[]error) {
	g, ok := v.(*domain.Graph)
	if !ok {
		return
	}
	for _, item := range sel.Selection {
		child := g.Vertex(item.ID)
		if child == nil {
			*errs = append(*errs, &domain.DanglingSelectionError{GraphID: g.ID(), VertexID: item.ID})
			continue
		}
		collectDangling(child, item, errs)
	}
}
