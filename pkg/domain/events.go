package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventChainTraced      EventType = "chain_traced"
	EventPrimitiveCreated EventType = "primitive_created"
	EventGraphAssembled   EventType = "graph_assembled"
)

// ChainOutcome is the decision taken for one trace chain.
type ChainOutcome string

const (
	OutcomeIdentity   ChainOutcome = "identity"   // no operations, nothing emitted
	OutcomeLinear     ChainOutcome = "linear"     // exactly one branch
	OutcomeConverging ChainOutcome = "converging" // several branches collapsed into a create
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	GraphID   string    `json:"graph_id"`
}

// ChainEvent reports the analysis of one trace chain.
type ChainEvent struct {
	EventBase
	Root       string       `json:"root"`
	Operations int          `json:"operations"`
	Branches   int          `json:"branches"`
	Outcome    ChainOutcome `json:"outcome"`
}

// PrimitiveEvent reports a synthesized transition node.
type PrimitiveEvent struct {
	EventBase
	NodeID    string `json:"node_id"`
	Primitive string `json:"primitive"`
	Operator  string `json:"operator"`
	Origins   int    `json:"origins"`
}

// GraphEvent reports an assembled transition graph.
type GraphEvent struct {
	EventBase
	SourceID string  `json:"source_id"`
	Vertices int     `json:"vertices"`
	Duration float64 `json:"duration"`
}

// SynthesisHooks defines callbacks for engine observability. Nil hooks are skipped.
type SynthesisHooks struct {
	OnChainTraced      func(context.Context, *ChainEvent)
	OnPrimitiveCreated func(context.Context, *PrimitiveEvent)
	OnGraphAssembled   func(context.Context, *GraphEvent)
}

// Merge returns hooks that call the receiver's callbacks, then other's.
func (h SynthesisHooks) Merge(other SynthesisHooks) SynthesisHooks {
	return SynthesisHooks{
		OnChainTraced:      chainHook(h.OnChainTraced, other.OnChainTraced),
		OnPrimitiveCreated: chainHook(h.OnPrimitiveCreated, other.OnPrimitiveCreated),
		OnGraphAssembled:   chainHook(h.OnGraphAssembled, other.OnGraphAssembled),
	}
}

func chainHook[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
