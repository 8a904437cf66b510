package dto

import "github.com/aretw0/montage/pkg/domain"

// ChainDocument is the output form of a trace chain. A nil Value is a value
// with no memory identity; no Children means a leaf.
type ChainDocument struct {
	Value    *DataDocument  `json:"value" yaml:"value"`
	Children []EdgeDocument `json:"children,omitempty" yaml:"children,omitempty"`
}

// EdgeDocument is one producing operation of a chain.
type EdgeDocument struct {
	Operator string        `json:"operator" yaml:"operator"`
	Chain    ChainDocument `json:"chain" yaml:"chain"`
}

// FromChains converts trace chains for output.
func FromChains(chains []*domain.TraceChain) []ChainDocument {
	out := make([]ChainDocument, 0, len(chains))
	for _, c := range chains {
		out = append(out, FromChain(c))
	}
	return out
}

// FromChain converts one trace chain.
func FromChain(c *domain.TraceChain) ChainDocument {
	var doc ChainDocument
	if c.Value != nil {
		v := fromData(*c.Value)
		doc.Value = &v
	}
	for _, e := range c.Children {
		doc.Children = append(doc.Children, EdgeDocument{Operator: e.Operator.String(), Chain: FromChain(e.Chain)})
	}
	return doc
}
