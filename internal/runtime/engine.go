package runtime

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/montage/pkg/domain"
)

// Engine synthesizes transition graphs from baked animation graphs.
// It holds no state between calls: every method is a pure function of its inputs,
// apart from the hooks and logging it reports to.
type Engine struct {
	logger *slog.Logger
	hooks  domain.SynthesisHooks
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithSynthesisHooks registers observability hooks.
func WithSynthesisHooks(hooks domain.SynthesisHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// NewEngine creates a new engine.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) emitChainTraced(ctx context.Context, graphID string, root *domain.AnimationData, operations, branches int, outcome domain.ChainOutcome) {
	if e.hooks.OnChainTraced == nil {
		return
	}
	ev := &domain.ChainEvent{
		EventBase:  domain.EventBase{Timestamp: time.Now(), Type: domain.EventChainTraced, GraphID: graphID},
		Operations: operations,
		Branches:   branches,
		Outcome:    outcome,
	}
	if root != nil {
		ev.Root = root.ID
	}
	e.hooks.OnChainTraced(ctx, ev)
}

func (e *Engine) emitPrimitiveCreated(ctx context.Context, graphID, name string, n domain.TransitionNode, op domain.TraceOperator) {
	if e.hooks.OnPrimitiveCreated == nil {
		return
	}
	e.hooks.OnPrimitiveCreated(ctx, &domain.PrimitiveEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventPrimitiveCreated, GraphID: graphID},
		NodeID:    n.ID(),
		Primitive: name,
		Operator:  op.String(),
		Origins:   len(n.Origins()),
	})
}

func (e *Engine) emitGraphAssembled(ctx context.Context, source domain.Vertex, g *domain.Graph) {
	if e.hooks.OnGraphAssembled == nil {
		return
	}
	e.hooks.OnGraphAssembled(ctx, &domain.GraphEvent{
		EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventGraphAssembled, GraphID: g.ID()},
		SourceID:  source.ID(),
		Vertices:  len(g.Vertices),
		Duration:  g.Duration(),
	})
}
