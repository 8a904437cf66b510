package domain

import "fmt"

// TraceOperator identifies a recorded primitive data operation.
type TraceOperator int

const (
	MoveAndPlace TraceOperator = iota + 1
	CopyLiteral
	CreateLiteral
	CreateArray
	CreateReference
	CreateVariable
	Place
)

var operatorNames = map[TraceOperator]string{
	MoveAndPlace:    "MoveAndPlace",
	CopyLiteral:     "CopyLiteral",
	CreateLiteral:   "CreateLiteral",
	CreateArray:     "CreateArray",
	CreateReference: "CreateReference",
	CreateVariable:  "CreateVariable",
	Place:           "Place",
}

// TraceOperators lists every operator of the enumeration, in declaration order.
func TraceOperators() []TraceOperator {
	return []TraceOperator{MoveAndPlace, CopyLiteral, CreateLiteral, CreateArray, CreateReference, CreateVariable, Place}
}

func (op TraceOperator) String() string {
	if name, ok := operatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("TraceOperator(%d)", int(op))
}

// ParseTraceOperator resolves an operator by its name.
func ParseTraceOperator(name string) (TraceOperator, error) {
	for op, n := range operatorNames {
		if n == name {
			return op, nil
		}
	}
	return 0, &UnsupportedOperatorError{Name: name}
}

// TraceChain is the provenance tree of one value.
// A nil Children slice marks a leaf: the value existed before the traced
// segment or was supplied from outside it.
type TraceChain struct {
	Value    *AnimationData
	Children []TraceEdge
}

// TraceEdge pairs the operator that produced a chain's value with the chain of
// one of its inputs.
type TraceEdge struct {
	Operator TraceOperator
	Chain    *TraceChain
}

// Leaf creates a chain with no producing operation.
func Leaf(value *AnimationData) *TraceChain {
	return &TraceChain{Value: value}
}

// IsLeaf reports whether no tracked operation produced this value.
func (c *TraceChain) IsLeaf() bool {
	return c.Children == nil
}

// Depth returns the number of edges along the longest root-to-leaf path.
func (c *TraceChain) Depth() int {
	depth := 0
	for _, e := range c.Children {
		depth = max(depth, 1+e.Chain.Depth())
	}
	return depth
}

// Selection describes which parts of a composite graph are expanded.
// A nil Selection means the vertex is fully synthesized.
type Selection struct {
	ID        string      `json:"id" yaml:"id" mapstructure:"id"`
	Selection []Selection `json:"selection,omitempty" yaml:"selection,omitempty" mapstructure:"selection"`
}
