package montage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/montage/internal/runtime"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/ports"
)

// Version is the library version reported by the CLI and the adapters.
const Version = "0.3.0"

// ErrNoSource is returned by Synthesize when no GraphLoader was configured.
var ErrNoSource = errors.New("no graph source configured")

// Engine is the high-level entry point for the montage library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Engine struct {
	runtime *runtime.Engine
	loader  ports.GraphLoader
	hooks   domain.SynthesisHooks
	logger  *slog.Logger
}

var _ ports.Synthesizer = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithSynthesisHooks registers observability hooks. Repeated calls accumulate.
func WithSynthesisHooks(hooks domain.SynthesisHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithLoader sets the source Synthesize reads the baked graph from.
func WithLoader(l ports.GraphLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new montage Engine.
func New(opts ...Option) *Engine {
	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized (so we don't pass nil to runtime)
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	eng.runtime = runtime.NewEngine(
		runtime.WithLogger(eng.logger),
		runtime.WithSynthesisHooks(eng.hooks),
	)
	return eng
}

// Trace extracts one trace chain per root output of a baked graph.
func (e *Engine) Trace(ctx context.Context, g *domain.Graph) ([]*domain.TraceChain, error) {
	return e.runtime.Trace(ctx, g)
}

// CreateTransition synthesizes the transition graph of a vertex.
// Atomic nodes are returned as clones.
func (e *Engine) CreateTransition(ctx context.Context, v domain.Vertex) (domain.Vertex, error) {
	return e.runtime.CreateTransition(ctx, v)
}

// CreateTransitionFromSelection synthesizes only the parts of v named by sel.
func (e *Engine) CreateTransitionFromSelection(ctx context.Context, v domain.Vertex, sel domain.Selection) (domain.Vertex, error) {
	return e.runtime.CreateTransitionFromSelection(ctx, v, sel)
}

// Synthesize loads the configured graph and synthesizes its transition. When the
// loader also stores a selection, the transition follows it.
func (e *Engine) Synthesize(ctx context.Context) (domain.Vertex, error) {
	if e.loader == nil {
		return nil, ErrNoSource
	}

	g, err := e.loader.LoadGraph(ctx)
	if err != nil {
		return nil, fmt.Errorf("load graph: %w", err)
	}

	if sl, ok := e.loader.(ports.SelectionLoader); ok {
		sel, err := sl.LoadSelection(ctx)
		if err != nil {
			return nil, fmt.Errorf("load selection: %w", err)
		}
		if sel != nil {
			return e.runtime.CreateTransitionFromSelection(ctx, g, *sel)
		}
	}
	return e.runtime.CreateTransition(ctx, g)
}

// Loader returns the underlying GraphLoader, or nil.
func (e *Engine) Loader() ports.GraphLoader {
	return e.loader
}
