package dsl

import (
	"fmt"
	"slices"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id       string
	op       domain.TraceOperator
	typ      string
	duration float64
	reads    []domain.AnimationData
	writes   []domain.AnimationData
	baked    bool
}

// Op sets the primitive operation the node recorded.
func (n *NodeBuilder) Op(op domain.TraceOperator) *NodeBuilder {
	n.op = op
	return n
}

// Type sets the source construct, e.g. BinaryExpression.
func (n *NodeBuilder) Type(t string) *NodeBuilder {
	n.typ = t
	return n
}

// Duration overrides DefaultDuration.
func (n *NodeBuilder) Duration(d float64) *NodeBuilder {
	n.duration = d
	return n
}

// Reads records values read by the node. Each id is located at a path of the same name.
func (n *NodeBuilder) Reads(ids ...string) *NodeBuilder {
	n.reads = append(n.reads, refs(ids)...)
	n.baked = true
	return n
}

// Writes records values written by the node. Only the first write is traced.
func (n *NodeBuilder) Writes(ids ...string) *NodeBuilder {
	n.writes = append(n.writes, refs(ids)...)
	n.baked = true
	return n
}

// Baked marks the node baked even if it records no reads or writes.
func (n *NodeBuilder) Baked() *NodeBuilder {
	n.baked = true
	return n
}

// Build returns the configured node.
// This is primarily used by the Builder, but exposed for advanced usage.
func (n *NodeBuilder) Build() (domain.Node, error) {
	v, _, err := n.vertex()
	if err != nil {
		return nil, err
	}
	return v.(domain.Node), nil
}

func (n *NodeBuilder) vertex() (domain.Vertex, domain.NodeData, error) {
	if n.id == "" {
		return nil, domain.NodeData{}, fmt.Errorf("node without id")
	}

	var (
		node interface {
			domain.Node
			Bake(reads, writes []domain.AnimationData)
		}
		name = n.typ
	)
	if n.op != 0 {
		if !slices.Contains(domain.TraceOperators(), n.op) {
			return nil, domain.NodeData{}, fmt.Errorf("node %q: %w", n.id, &domain.UnsupportedOperatorError{Operator: n.op})
		}
		node = primitive.NewRecorded(n.id, n.op, n.duration)
	} else {
		if name == "" {
			name = n.id
		}
		node = primitive.NewStep(n.id, name, n.duration)
	}

	if n.baked {
		node.Bake(n.reads, n.writes)
	}
	return node, domain.NodeData{Type: n.typ}, nil
}

func refs(ids []string) []domain.AnimationData {
	out := make([]domain.AnimationData, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.AnimationData{ID: id, Location: domain.Location{id}})
	}
	return out
}
