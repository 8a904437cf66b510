package domain

import "fmt"

// Graph is the composite vertex: an ordered list of nodes and nested graphs.
// Insertion order is the visual and causal order.
type Graph struct {
	GraphID string
	Data    NodeData

	Vertices []Vertex

	Pre  *Snapshot
	Post *Snapshot

	// IsParallel switches scheduling from strict sequence to scheduling steps.
	IsParallel bool
	// ParallelStarts[i] is the absolute scheduling step vertex i starts in, not
	// an offset from the previous vertex's start. A step begins once every
	// vertex of an earlier step has ended, so vertices sharing a step run
	// concurrently; a relative stagger between consecutive vertices cannot be
	// expressed. Only meaningful when IsParallel is set.
	ParallelStarts []int
}

// NewGraph creates an empty sequential graph.
func NewGraph(id string, data NodeData) *Graph {
	return &Graph{GraphID: id, Data: data}
}

func (g *Graph) ID() string { return g.GraphID }
func (g *Graph) Kind() VertexKind { return KindGraph }
func (g *Graph) NodeData() NodeData { return g.Data }
func (g *Graph) SetNodeData(d NodeData) { g.Data = d }
func (g *Graph) Precondition() *Snapshot { return g.Pre }
func (g *Graph) Postcondition() *Snapshot { return g.Post }
func (g *Graph) sealed() {}

// AddVertex appends a vertex, tagging it with the given provenance.
func (g *Graph) AddVertex(v Vertex, data NodeData) {
	v.SetNodeData(data)
	g.Vertices = append(g.Vertices, v)
}

// Vertex returns the direct child with the given id, or nil.
func (g *Graph) Vertex(id string) Vertex {
	for _, v := range g.Vertices {
		if v.ID() == id {
			return v
		}
	}
	return nil
}

// Last returns the final vertex, or nil for an empty graph.
func (g *Graph) Last() Vertex {
	if len(g.Vertices) == 0 {
		return nil
	}
	return g.Vertices[len(g.Vertices)-1]
}

// Leaves flattens the graph depth-first into its atomic nodes.
func (g *Graph) Leaves() []Node {
	var out []Node
	for _, v := range g.Vertices {
		switch v.Kind() {
		case KindNode:
			out = append(out, v.(Node))
		case KindGraph:
			out = append(out, v.(*Graph).Leaves()...)
		}
	}
	return out
}

// Duration is derived from the vertices. Sequential graphs sum their vertices.
// Parallel graphs run each step for as long as its longest vertex, one step
// after another.
func (g *Graph) Duration() float64 {
	if !g.IsParallel {
		var total float64
		for _, v := range g.Vertices {
			total += v.Duration()
		}
		return total
	}

	longest := make(map[int]float64)
	for i, v := range g.Vertices {
		step := 0
		if i < len(g.ParallelStarts) {
			step = g.ParallelStarts[i]
		}
		longest[step] = max(longest[step], v.Duration())
	}

	var total float64
	for _, d := range longest {
		total += d
	}
	return total
}

// Validate checks the structural invariants of the graph, recursively.
func (g *Graph) Validate() error {
	if g.IsParallel && len(g.ParallelStarts) != len(g.Vertices) {
		return fmt.Errorf("graph %s: %d parallel starts for %d vertices", g.GraphID, len(g.ParallelStarts), len(g.Vertices))
	}
	for i, s := range g.ParallelStarts {
		if s < 0 {
			return fmt.Errorf("graph %s: negative parallel start at vertex %d", g.GraphID, i)
		}
	}
	for _, v := range g.Vertices {
		if v.Kind() == KindGraph {
			if err := v.(*Graph).Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Clone returns a deep copy of the graph and all of its vertices.
func (g *Graph) Clone() *Graph {
	c := &Graph{
		GraphID:        g.GraphID,
		Data:           g.Data.Clone(),
		Pre:            g.Pre.Clone(),
		Post:           g.Post.Clone(),
		IsParallel:     g.IsParallel,
		ParallelStarts: append([]int(nil), g.ParallelStarts...),
		Vertices:       make([]Vertex, 0, len(g.Vertices)),
	}
	for _, v := range g.Vertices {
		c.Vertices = append(c.Vertices, v.CloneVertex())
	}
	return c
}

// CloneVertex implements Vertex.
func (g *Graph) CloneVertex() Vertex {
	return g.Clone()
}
