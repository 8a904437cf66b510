package dto

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Vertex kinds as written in documents.
const (
	KindNode  = "node"
	KindGraph = "graph"
)

// Document is the envelope read from fixture files and request bodies:
// a baked graph and, optionally, the selection to synthesize.
type Document struct {
	Graph     VertexDocument    `json:"graph" yaml:"graph" mapstructure:"graph"`
	Selection *domain.Selection `json:"selection,omitempty" yaml:"selection,omitempty" mapstructure:"selection"`
}

// VertexDocument describes a node or a graph. Graph-only and node-only fields
// are ignored on the other kind.
type VertexDocument struct {
	ID         string            `json:"id" yaml:"id" mapstructure:"id"`
	Kind       string            `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Type       string            `json:"type,omitempty" yaml:"type,omitempty" mapstructure:"type"`
	Label      string            `json:"label,omitempty" yaml:"label,omitempty" mapstructure:"label"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty" mapstructure:"attributes"`

	Precondition  *SnapshotDocument `json:"precondition,omitempty" yaml:"precondition,omitempty" mapstructure:"precondition"`
	Postcondition *SnapshotDocument `json:"postcondition,omitempty" yaml:"postcondition,omitempty" mapstructure:"postcondition"`

	// Graph
	Parallel       bool             `json:"parallel,omitempty" yaml:"parallel,omitempty" mapstructure:"parallel"`
	ParallelStarts []int            `json:"parallel_starts,omitempty" yaml:"parallel_starts,omitempty" mapstructure:"parallel_starts"`
	Vertices       []VertexDocument `json:"vertices,omitempty" yaml:"vertices,omitempty" mapstructure:"vertices"`

	// Recorded node
	Name     string         `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Operator string         `json:"operator,omitempty" yaml:"operator,omitempty" mapstructure:"operator"`
	Duration float64        `json:"duration,omitempty" yaml:"duration,omitempty" mapstructure:"duration"`
	Baked    bool           `json:"baked,omitempty" yaml:"baked,omitempty" mapstructure:"baked"`
	Reads    []DataDocument `json:"reads,omitempty" yaml:"reads,omitempty" mapstructure:"reads"`
	Writes   []DataDocument `json:"writes,omitempty" yaml:"writes,omitempty" mapstructure:"writes"`

	// Synthesized node (output only)
	Primitive string            `json:"primitive,omitempty" yaml:"primitive,omitempty" mapstructure:"primitive"`
	Output    *DataDocument     `json:"output,omitempty" yaml:"output,omitempty" mapstructure:"output"`
	Origins   []DataDocument    `json:"origins,omitempty" yaml:"origins,omitempty" mapstructure:"origins"`
	Snapshot  *SnapshotDocument `json:"snapshot,omitempty" yaml:"snapshot,omitempty" mapstructure:"snapshot"`
}

// DataDocument is a reference to a memory value.
type DataDocument struct {
	ID       string   `json:"id" yaml:"id" mapstructure:"id"`
	Location []string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
}

// SnapshotDocument is a captured memory state.
type SnapshotDocument struct {
	Data []DatumDocument `json:"data" yaml:"data" mapstructure:"data"`
}

// DatumDocument is one value of a snapshot.
type DatumDocument struct {
	ID       string   `json:"id" yaml:"id" mapstructure:"id"`
	Kind     string   `json:"kind,omitempty" yaml:"kind,omitempty" mapstructure:"kind"`
	Location []string `json:"location,omitempty" yaml:"location,omitempty" mapstructure:"location"`
	Value    any      `json:"value,omitempty" yaml:"value,omitempty" mapstructure:"value"`
}

// Decode converts a generic map (parsed YAML or JSON) into a Document.
// Unknown keys are rejected so typos surface instead of silently unbaking a node.
func Decode(raw map[string]any) (*Document, error) {
	var doc Document
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &doc,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if doc.Graph.ID == "" {
		return nil, fmt.Errorf("document missing graph id")
	}
	return &doc, nil
}
