package dsl

import (
	"fmt"

	"github.com/aretw0/montage/pkg/adapters/memory"
	"github.com/aretw0/montage/pkg/domain"
)

// DefaultDuration is given to nodes that do not set one.
const DefaultDuration = 30

// Builder manages the construction of one graph. Vertices keep the order they
// were added in.
type Builder struct {
	id        string
	data      domain.NodeData
	vertices  []vertexBuilder
	parallel  bool
	starts    []int
	pre       *domain.Snapshot
	post      *domain.Snapshot
	selection *domain.Selection
}

// vertexBuilder is either a *NodeBuilder or a nested *Builder.
type vertexBuilder interface {
	vertex() (domain.Vertex, domain.NodeData, error)
}

// New creates a new graph builder.
func New(id string) *Builder {
	return &Builder{id: id}
}

// Type sets the source construct the graph was recorded from.
func (b *Builder) Type(t string) *Builder {
	b.data.Type = t
	return b
}

// Label sets a human-readable label.
func (b *Builder) Label(l string) *Builder {
	b.data.Label = l
	return b
}

// Parallel schedules the vertices by step instead of in sequence. starts[i] is
// the step of the i-th vertex; missing entries default to step 0.
func (b *Builder) Parallel(starts ...int) *Builder {
	b.parallel = true
	b.starts = starts
	return b
}

// Add appends a recorded node. Nodes are traced once they have an operator.
func (b *Builder) Add(id string) *NodeBuilder {
	nb := &NodeBuilder{id: id, duration: DefaultDuration}
	b.vertices = append(b.vertices, nb)
	return nb
}

// Step appends a baked node that reads and writes nothing, such as the setup
// phase of an expression.
func (b *Builder) Step(id string) *NodeBuilder {
	return b.Add(id).Baked()
}

// Graph appends a nested graph and returns its builder.
func (b *Builder) Graph(id string) *Builder {
	child := New(id)
	b.vertices = append(b.vertices, child)
	return child
}

// Initial appends a datum to the graph's precondition.
func (b *Builder) Initial(id string, kind domain.DataKind, value any) *Builder {
	b.pre = appendDatum(b.pre, id, kind, value)
	return b
}

// Final appends a datum to the graph's postcondition. Final data are the roots
// traced when the graph is synthesized, in the order they are added.
func (b *Builder) Final(id string, kind domain.DataKind, value any) *Builder {
	b.post = appendDatum(b.post, id, kind, value)
	return b
}

// Select stores a selection that Build hands to the loader.
func (b *Builder) Select(sel domain.Selection) *Builder {
	b.selection = &sel
	return b
}

// BuildGraph assembles the graph.
func (b *Builder) BuildGraph() (*domain.Graph, error) {
	v, _, err := b.vertex()
	if err != nil {
		return nil, err
	}
	g := v.(*domain.Graph)
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Build compiles the graph into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	g, err := b.BuildGraph()
	if err != nil {
		return nil, err
	}

	loader, err := memory.NewLoader(g, b.selection)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}
	return loader, nil
}

func (b *Builder) vertex() (domain.Vertex, domain.NodeData, error) {
	g := domain.NewGraph(b.id, b.data)
	for _, vb := range b.vertices {
		v, data, err := vb.vertex()
		if err != nil {
			return nil, domain.NodeData{}, fmt.Errorf("graph %q: %w", b.id, err)
		}
		g.AddVertex(v, data)
	}

	if b.parallel {
		g.IsParallel = true
		g.ParallelStarts = make([]int, len(g.Vertices))
		copy(g.ParallelStarts, b.starts)
	}
	g.Pre = b.pre.Clone()
	g.Post = b.post.Clone()
	return g, b.data.Clone(), nil
}

func appendDatum(s *domain.Snapshot, id string, kind domain.DataKind, value any) *domain.Snapshot {
	if s == nil {
		s = &domain.Snapshot{}
	}
	s.Data = append(s.Data, domain.Datum{ID: id, Kind: kind, Location: domain.Location{id}, Value: value})
	return s
}
