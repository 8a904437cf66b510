package dto

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// DefaultDuration is used for recorded nodes that do not state one.
const DefaultDuration = 30

// ToGraph converts the document's graph into a domain graph.
func (d *Document) ToGraph() (*domain.Graph, error) {
	v, err := d.Graph.ToVertex()
	if err != nil {
		return nil, err
	}
	g, ok := v.(*domain.Graph)
	if !ok {
		return nil, fmt.Errorf("document root %q is a %s, want a graph", d.Graph.ID, v.Kind())
	}
	return g, nil
}

// ToVertex converts a vertex document. Nodes become recorded nodes when they
// name an operator and plain steps otherwise.
func (d *VertexDocument) ToVertex() (domain.Vertex, error) {
	if d.ID == "" {
		return nil, fmt.Errorf("vertex missing id")
	}
	if d.Primitive != "" {
		return nil, fmt.Errorf("vertex %q: synthesized %s vertices cannot be read back", d.ID, d.Primitive)
	}

	data := domain.NodeData{Type: d.Type, Label: d.Label, Attributes: d.Attributes}

	kind := d.Kind
	if kind == "" {
		kind = KindNode
		if len(d.Vertices) > 0 {
			kind = KindGraph
		}
	}

	switch kind {
	case KindGraph:
		g := domain.NewGraph(d.ID, data)
		g.IsParallel = d.Parallel
		g.ParallelStarts = d.ParallelStarts
		g.Pre = d.Precondition.toSnapshot()
		g.Post = d.Postcondition.toSnapshot()
		for i := range d.Vertices {
			child, err := d.Vertices[i].ToVertex()
			if err != nil {
				return nil, fmt.Errorf("graph %q: %w", d.ID, err)
			}
			g.AddVertex(child, child.NodeData())
		}
		return g, nil

	case KindNode:
		duration := d.Duration
		if duration == 0 {
			duration = DefaultDuration
		}

		var base *domain.BaseNode
		var n domain.Node
		if d.Operator != "" {
			op, err := domain.ParseTraceOperator(d.Operator)
			if err != nil {
				return nil, fmt.Errorf("vertex %q: %w", d.ID, err)
			}
			r := primitive.NewRecorded(d.ID, op, duration)
			base, n = &r.BaseNode, r
		} else {
			name := d.Name
			if name == "" {
				name = d.Type
			}
			s := primitive.NewStep(d.ID, name, duration)
			base, n = &s.BaseNode, s
		}

		base.Data = data
		base.Pre = d.Precondition.toSnapshot()
		base.Post = d.Postcondition.toSnapshot()
		if d.Baked || d.Reads != nil || d.Writes != nil {
			base.Bake(toData(d.Reads), toData(d.Writes))
		}
		return n, nil

	default:
		return nil, fmt.Errorf("vertex %q: unknown kind %q", d.ID, d.Kind)
	}
}

func toData(docs []DataDocument) []domain.AnimationData {
	out := make([]domain.AnimationData, 0, len(docs))
	for _, d := range docs {
		out = append(out, domain.AnimationData{ID: d.ID, Location: domain.Location(d.Location)})
	}
	return out
}

func (s *SnapshotDocument) toSnapshot() *domain.Snapshot {
	if s == nil {
		return nil
	}
	out := &domain.Snapshot{Data: make([]domain.Datum, 0, len(s.Data))}
	for _, d := range s.Data {
		kind := domain.DataKind(d.Kind)
		if kind == "" {
			kind = domain.DataLiteral
		}
		out.Data = append(out.Data, domain.Datum{
			ID:       d.ID,
			Kind:     kind,
			Location: domain.Location(d.Location),
			Value:    d.Value,
		})
	}
	return out
}
