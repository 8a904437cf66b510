package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/observability"
	"github.com/aretw0/montage/pkg/primitive"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunk: x is created from a and b (converging), y is moved from a (linear),
// a itself is untouched (identity).
func chunk() *domain.Graph {
	ref := func(id string) domain.AnimationData { return domain.AnimationData{ID: id, Location: domain.Location{id}} }

	sum := primitive.NewRecorded("sum", domain.CreateLiteral, 10)
	sum.Bake([]domain.AnimationData{ref("a"), ref("b")}, []domain.AnimationData{ref("x")})
	copyA := primitive.NewRecorded("copy", domain.CopyLiteral, 10)
	copyA.Bake([]domain.AnimationData{ref("a")}, []domain.AnimationData{ref("y")})

	g := domain.NewGraph("chunk", domain.NodeData{Type: "Chunk"})
	g.AddVertex(sum, domain.NodeData{})
	g.AddVertex(copyA, domain.NodeData{})
	g.Post = &domain.Snapshot{Data: []domain.Datum{
		{ID: "x", Location: domain.Location{"x"}},
		{ID: "y", Location: domain.Location{"y"}},
		{ID: "a", Location: domain.Location{"a"}},
	}}
	return g
}

func TestMetrics_Hooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)

	engine := montage.New(montage.WithSynthesisHooks(m.Hooks()))
	_, err := engine.CreateTransition(context.Background(), chunk())
	require.NoError(t, err)

	assert.InDelta(t, 1, testutil.ToFloat64(m.Chains.WithLabelValues("converging")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Chains.WithLabelValues("linear")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Chains.WithLabelValues("identity")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Primitives.WithLabelValues("Create", "CreateLiteral")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.Primitives.WithLabelValues("Move", "CopyLiteral")), 0)

	assert.Equal(t, 1, testutil.CollectAndCount(m.Vertices))
	assert.Equal(t, 3, testutil.CollectAndCount(m.Chains), "one series per outcome")

	expected := `
# HELP montage_primitives_total Transition primitives synthesized, by primitive and trace operator
# TYPE montage_primitives_total counter
montage_primitives_total{operator="CopyLiteral",primitive="Move"} 1
montage_primitives_total{operator="CreateLiteral",primitive="Create"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "montage_primitives_total"))
}

func TestMetrics_Unregistered(t *testing.T) {
	m := observability.NewMetrics(nil)
	m.Hooks().OnGraphAssembled(context.Background(), &domain.GraphEvent{Vertices: 3, Duration: 65})
	assert.Equal(t, 1, testutil.CollectAndCount(m.Duration))
}

func TestLoggingHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	engine := montage.New(montage.WithSynthesisHooks(observability.LoggingHooks(logger)))
	_, err := engine.CreateTransition(context.Background(), chunk())
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, `"msg":"chain_traced"`))
	assert.Equal(t, 2, strings.Count(out, `"msg":"primitive_created"`))
	assert.Equal(t, 1, strings.Count(out, `"msg":"graph_assembled"`))
	assert.Contains(t, out, `"outcome":"converging"`)
}
