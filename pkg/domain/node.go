package domain

import (
	"maps"
	"slices"
)

// VertexKind discriminates the two variants of a Vertex.
type VertexKind int

const (
	// KindNode is an atomic animation with a begin/seek/end lifecycle.
	KindNode VertexKind = iota + 1
	// KindGraph is a composite of other vertices.
	KindGraph
)

func (k VertexKind) String() string {
	switch k {
	case KindNode:
		return "node"
	case KindGraph:
		return "graph"
	default:
		return "unknown"
	}
}

// NodeData tags a vertex with its provenance (source construct, role in a transition).
type NodeData struct {
	Type       string            `json:"type" yaml:"type"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Clone returns a copy that shares nothing with the receiver.
func (d NodeData) Clone() NodeData {
	d.Attributes = maps.Clone(d.Attributes)
	return d
}

// WithType returns a copy retagged with the given type.
func (d NodeData) WithType(t string) NodeData {
	c := d.Clone()
	c.Type = t
	return c
}

// Vertex is either an atomic Node or a Graph. The set of variants is closed:
// callers switch on Kind and assert to Node or *Graph.
type Vertex interface {
	ID() string
	Kind() VertexKind
	NodeData() NodeData
	SetNodeData(NodeData)
	Precondition() *Snapshot
	Postcondition() *Snapshot
	Duration() float64
	CloneVertex() Vertex

	sealed()
}

// Node is the atomic unit of animation.
//
// Lifecycle is strictly ordered: Begin once, Seek zero or more times with t in
// [0,1] (not necessarily increasing), End once.
type Node interface {
	Vertex

	Ease(t float64) float64

	// Reads and Writes are the dependency sets recorded by a baking pass.
	Reads() []AnimationData
	Writes() []AnimationData
	Baked() bool

	Begin(env Environment) error
	Seek(env Environment, t float64) error
	End(env Environment) error
}

// Traced is implemented by nodes recorded during execution that map to a
// trace operator. Nodes that do not implement it are invisible to trace extraction.
type Traced interface {
	TraceOperator() TraceOperator
}

// BaseNode holds the state shared by every Node implementation.
// Concrete nodes embed it and provide the lifecycle.
type BaseNode struct {
	NodeID       string
	Name         string
	Data         NodeData
	BaseDuration float64
	Easing       EasingFunc
	Pre          *Snapshot
	Post         *Snapshot

	reads  []AnimationData
	writes []AnimationData
	baked  bool
}

// NewBaseNode creates a base with the default easing.
func NewBaseNode(id, name string, duration float64) BaseNode {
	return BaseNode{
		NodeID:       id,
		Name:         name,
		BaseDuration: duration,
		Easing:       EaseInOutCubic,
	}
}

func (n *BaseNode) ID() string { return n.NodeID }
func (n *BaseNode) Kind() VertexKind { return KindNode }
func (n *BaseNode) NodeData() NodeData { return n.Data }
func (n *BaseNode) SetNodeData(d NodeData) { n.Data = d }
func (n *BaseNode) Precondition() *Snapshot { return n.Pre }
func (n *BaseNode) Postcondition() *Snapshot { return n.Post }
func (n *BaseNode) Duration() float64 { return n.BaseDuration }
func (n *BaseNode) Reads() []AnimationData { return n.reads }
func (n *BaseNode) Writes() []AnimationData { return n.writes }
func (n *BaseNode) Baked() bool { return n.baked }
func (n *BaseNode) sealed() {}

// Operation names what the node does, e.g. Move or CreateLiteral.
func (n *BaseNode) Operation() string { return n.Name }

// Ease maps normalized time through the node's easing function.
func (n *BaseNode) Ease(t float64) float64 {
	if n.Easing == nil {
		return Linear(t)
	}
	return n.Easing(clamp01(t))
}

// Bake records the node's dependency sets. Nil slices are stored as empty sets.
func (n *BaseNode) Bake(reads, writes []AnimationData) {
	n.reads = append(make([]AnimationData, 0, len(reads)), reads...)
	n.writes = append(make([]AnimationData, 0, len(writes)), writes...)
	n.baked = true
}

// CloneBase returns a deep copy of the base, suitable for embedding in a cloned node.
func (n *BaseNode) CloneBase() BaseNode {
	c := *n
	c.Data = n.Data.Clone()
	c.Pre = n.Pre.Clone()
	c.Post = n.Post.Clone()
	c.reads = slices.Clone(n.reads)
	c.writes = slices.Clone(n.writes)
	return c
}
