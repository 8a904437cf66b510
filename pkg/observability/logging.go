package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/montage/pkg/domain"
)

// LoggingHooks returns synthesis hooks that write every event to logger at debug
// level, with the primitive events at info.
func LoggingHooks(logger *slog.Logger) domain.SynthesisHooks {
	return domain.SynthesisHooks{
		OnChainTraced: func(ctx context.Context, e *domain.ChainEvent) {
			logger.DebugContext(ctx, "chain_traced",
				"graph_id", e.GraphID,
				"root", e.Root,
				"operations", e.Operations,
				"branches", e.Branches,
				"outcome", e.Outcome,
			)
		},
		OnPrimitiveCreated: func(ctx context.Context, e *domain.PrimitiveEvent) {
			logger.InfoContext(ctx, "primitive_created",
				"graph_id", e.GraphID,
				"node_id", e.NodeID,
				"primitive", e.Primitive,
				"operator", e.Operator,
				"origins", e.Origins,
			)
		},
		OnGraphAssembled: func(ctx context.Context, e *domain.GraphEvent) {
			logger.DebugContext(ctx, "graph_assembled",
				"graph_id", e.GraphID,
				"source_id", e.SourceID,
				"vertices", e.Vertices,
				"duration", e.Duration,
			)
		},
	}
}
