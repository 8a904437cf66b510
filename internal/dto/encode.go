package dto

import (
	"maps"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// FromVertex converts a domain vertex into its document form.
func FromVertex(v domain.Vertex) VertexDocument {
	data := v.NodeData()
	doc := VertexDocument{
		ID:            v.ID(),
		Type:          data.Type,
		Label:         data.Label,
		Attributes:    maps.Clone(data.Attributes),
		Precondition:  fromSnapshot(v.Precondition()),
		Postcondition: fromSnapshot(v.Postcondition()),
	}

	switch v.Kind() {
	case domain.KindGraph:
		g := v.(*domain.Graph)
		doc.Kind = KindGraph
		doc.Parallel = g.IsParallel
		doc.ParallelStarts = g.ParallelStarts
		for _, child := range g.Vertices {
			doc.Vertices = append(doc.Vertices, FromVertex(child))
		}
		return doc
	case domain.KindNode:
		doc.Kind = KindNode
	}

	n := v.(domain.Node)
	doc.Duration = n.Duration()

	switch n := n.(type) {
	case domain.TransitionNode:
		doc.Primitive = operation(n)
		if out := n.Output(); out != nil {
			o := fromData(*out)
			doc.Output = &o
		}
		doc.Origins = fromDataSlice(n.Origins())
		return doc
	case *primitive.Initialize:
		doc.Primitive = n.Operation()
		doc.Snapshot = fromSnapshot(n.Snapshot)
		return doc
	case domain.Traced:
		doc.Operator = n.TraceOperator().String()
	default:
		doc.Name = operation(n)
	}

	if n.Baked() {
		doc.Baked = true
		doc.Reads = fromDataSlice(n.Reads())
		doc.Writes = fromDataSlice(n.Writes())
	}
	return doc
}

// NewDocument wraps a graph for output.
func NewDocument(v domain.Vertex, sel *domain.Selection) *Document {
	return &Document{Graph: FromVertex(v), Selection: sel}
}

func operation(n domain.Node) string {
	if o, ok := n.(interface{ Operation() string }); ok {
		return o.Operation()
	}
	return ""
}

func fromData(d domain.AnimationData) DataDocument {
	return DataDocument{ID: d.ID, Location: []string(d.Location)}
}

func fromDataSlice(in []domain.AnimationData) []DataDocument {
	out := make([]DataDocument, 0, len(in))
	for _, d := range in {
		out = append(out, fromData(d))
	}
	return out
}

func fromSnapshot(s *domain.Snapshot) *SnapshotDocument {
	if s == nil {
		return nil
	}
	out := &SnapshotDocument{Data: make([]DatumDocument, 0, len(s.Data))}
	for _, d := range s.Data {
		out.Data = append(out.Data, DatumDocument{
			ID:       d.ID,
			Kind:     string(d.Kind),
			Location: []string(d.Location),
			Value:    d.Value,
		})
	}
	return out
}
