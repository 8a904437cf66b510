package runtime_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/montage/internal/runtime"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transitionOf(t *testing.T, g *domain.Graph) *domain.Graph {
	t.Helper()
	v, err := runtime.NewEngine().CreateTransition(context.Background(), g)
	require.NoError(t, err)
	out, ok := v.(*domain.Graph)
	require.True(t, ok, "expected a graph, got %T", v)
	return out
}

func primitives(g *domain.Graph) []domain.TransitionNode {
	var out []domain.TransitionNode
	for _, v := range g.Vertices {
		if n, ok := v.(domain.TransitionNode); ok {
			out = append(out, n)
		}
	}
	return out
}

func TestCreateTransition_CreateLiteral(t *testing.T) {
	g := chunk("chunk", []string{"x"},
		recorded("s1", domain.CreateLiteral, "x", "a"),
	)

	tr := transitionOf(t, g)

	nodes := primitives(tr)
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Create{}, nodes[0])
	assert.Equal(t, "Create(x)", nodes[0].ID())
	assert.Equal(t, "x", nodes[0].Output().ID)
	assert.Equal(t, []domain.AnimationData{ref("a")}, nodes[0].Origins())
}

func TestCreateTransition_FreshLiteralHasNoOrigins(t *testing.T) {
	g := chunk("chunk", []string{"x"},
		recorded("s1", domain.CreateLiteral, "x"),
	)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.Empty(t, nodes[0].Origins())
	assert.Empty(t, nodes[0].Reads())
	assert.Equal(t, []domain.AnimationData{ref("x")}, nodes[0].Writes())
}

func TestCreateTransition_ConvergingBranchesCollapseToCreate(t *testing.T) {
	g := chunk("chunk", []string{"x"},
		recorded("s1", domain.MoveAndPlace, "x", "a", "b"),
	)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Create{}, nodes[0])
	assert.Equal(t, []domain.AnimationData{ref("a"), ref("b")}, nodes[0].Origins())
}

func TestCreateTransition_LinearChainUsesLastOperator(t *testing.T) {
	g := chunk("chunk", []string{"x"},
		recorded("s1", domain.MoveAndPlace, "y", "a"),
		recorded("s2", domain.Place, "x", "y"),
	)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Place{}, nodes[0])
	// Y is intermediate: only terminal leaves are origins.
	assert.Equal(t, []domain.AnimationData{ref("a")}, nodes[0].Origins())
}

func TestCreateTransition_InPlaceMoveKeepsItsSource(t *testing.T) {
	g := chunk("chunk", []string{"a"},
		recorded("s1", domain.MoveAndPlace, "a", "a"),
	)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Move{}, nodes[0])
	assert.Equal(t, "Move(a)", nodes[0].ID())
	assert.Equal(t, []domain.AnimationData{ref("a")}, nodes[0].Origins())
	assert.Equal(t, []domain.AnimationData{ref("a")}, nodes[0].Reads())
}

func TestTrace_InPlaceUpdateReachesEarlierProducer(t *testing.T) {
	g := chunk("chunk", []string{"b"},
		recorded("s1", domain.CreateArray, "b"),
		recorded("s2", domain.MoveAndPlace, "b", "b"),
	)

	chains, err := runtime.NewEngine().Trace(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, chains, 1)

	ops, leaves := runtime.Flatten(chains[0])
	assert.Equal(t, []domain.TraceOperator{domain.CreateArray, domain.MoveAndPlace}, ops)
	require.Len(t, leaves, 1)
	assert.Nil(t, leaves[0].Value)
}

func TestCreateTransition_ArrayElementWritesConverge(t *testing.T) {
	g := chunk("chunk", []string{"arr"},
		recorded("s1", domain.CreateArray, "arr"),
		recorded("s2", domain.Place, "arr", "e1", "arr"),
		recorded("s3", domain.Place, "arr", "e2", "arr"),
	)

	chains, err := runtime.NewEngine().Trace(context.Background(), g)
	require.NoError(t, err)
	require.Len(t, chains, 1)
	ops, _ := runtime.Flatten(chains[0])
	assert.Equal(t, []domain.TraceOperator{domain.CreateArray, domain.Place, domain.Place}, ops)
	assert.Len(t, runtime.Branches(chains[0]), 3)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Create{}, nodes[0])
	assert.Equal(t, "Create(arr)", nodes[0].ID())
	assert.Equal(t, []domain.AnimationData{ref("e2"), ref("e1")}, nodes[0].Origins())
}

func TestCreateTransition_IdentityEmitsNothing(t *testing.T) {
	g := chunk("chunk", []string{"x", "y"})

	tr := transitionOf(t, g)
	assert.Empty(t, primitives(tr))
	require.Len(t, tr.Vertices, 1)
	assert.IsType(t, &primitive.Initialize{}, tr.Vertices[0])
	assert.Equal(t, []int{0}, tr.ParallelStarts)
}

func TestCreateTransition_Shape(t *testing.T) {
	g := chunk("chunk", []string{"x", "arr"},
		recorded("s1", domain.CreateLiteral, "x"),
		recorded("s2", domain.CreateArray, "arr"),
	)

	tr := transitionOf(t, g)

	assert.Equal(t, "Transition(chunk)", tr.ID())
	assert.Equal(t, domain.TypeTransition, tr.NodeData().Type)
	assert.Equal(t, "chunk", tr.NodeData().Label)
	assert.True(t, tr.IsParallel)
	assert.Equal(t, []int{0, 1, 1}, tr.ParallelStarts)
	assert.Len(t, tr.Vertices, len(tr.ParallelStarts))
	require.NoError(t, tr.Validate())

	require.IsType(t, &primitive.Initialize{}, tr.Vertices[0])
	assert.Equal(t, "Initialize(chunk)", tr.Vertices[0].ID())
	assert.Equal(t, domain.TypeTransitionAnimation, tr.Vertices[0].NodeData().Type)
	for _, v := range tr.Vertices[1:] {
		assert.Equal(t, domain.TypeTransitionPrimitive, v.NodeData().Type)
	}

	// Every primitive starts right after the baseline: 5 + max(30, 10).
	assert.InDelta(t, 35.0, tr.Duration(), 1e-9)
}

func TestCreateTransition_BoundaryIdentity(t *testing.T) {
	g := chunk("chunk", []string{"x"}, recorded("s1", domain.CreateVariable, "x"))

	tr := transitionOf(t, g)

	assert.Same(t, g.Pre, tr.Pre)
	assert.Same(t, g.Post, tr.Post)
}

func TestCreateTransition_BaselineIsACopyOfTheLastState(t *testing.T) {
	last := recorded("s1", domain.CreateVariable, "x")
	last.Post = snapshot("x")
	g := chunk("chunk", []string{"ignored"}, last)

	tr := transitionOf(t, g)
	baseline, ok := tr.Vertices[0].(*primitive.Initialize)
	require.True(t, ok)
	assert.Equal(t, last.Post, baseline.Snapshot)
	assert.NotSame(t, last.Post, baseline.Snapshot)

	// Roots follow the last vertex too.
	nodes := primitives(tr)
	require.Len(t, nodes, 1)
	assert.Equal(t, "CreateVariable(x)", nodes[0].ID())
}

func TestCreateTransition_TracesAcrossNestedGraphs(t *testing.T) {
	inner := chunk("inner", []string{"y"}, recorded("s1", domain.CreateLiteral, "y", "a"))
	g := chunk("outer", []string{"x"},
		inner,
		recorded("s2", domain.MoveAndPlace, "x", "y"),
	)

	nodes := primitives(transitionOf(t, g))
	require.Len(t, nodes, 1)
	assert.IsType(t, &primitive.Move{}, nodes[0])
	assert.Equal(t, []domain.AnimationData{ref("a")}, nodes[0].Origins())
}

func TestCreateTransition_AtomicNodeIsCloned(t *testing.T) {
	n := recorded("s1", domain.Place, "x", "y")

	v, err := runtime.NewEngine().CreateTransition(context.Background(), n)
	require.NoError(t, err)
	assert.NotSame(t, n, v)
	assert.Equal(t, n.ID(), v.ID())
}

func TestCreateTransition_UnbakedGraph(t *testing.T) {
	g := chunk("chunk", []string{"x"},
		recorded("s1", domain.CreateLiteral, "x"),
		primitive.NewRecorded("s2", domain.Place, 10),
	)

	_, err := runtime.NewEngine().CreateTransition(context.Background(), g)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnbakedTrace)

	var unbaked *domain.UnbakedTraceError
	if !errors.As(err, &unbaked) {
		t.Fatalf("expected UnbakedTraceError, got %T", err)
	}
	assert.Equal(t, "s2", unbaked.NodeID)
}

func TestCreateTransition_DoesNotMutateSource(t *testing.T) {
	g := chunk("chunk", []string{"x"}, recorded("s1", domain.CreateLiteral, "x", "a"))
	before := g.Clone()

	_ = transitionOf(t, g)

	assert.Equal(t, before.Vertices[0].NodeData(), g.Vertices[0].NodeData())
	assert.Equal(t, before.Post, g.Post)
	assert.False(t, g.IsParallel)
}

func TestEngine_Hooks(t *testing.T) {
	var chains []*domain.ChainEvent
	var created []*domain.PrimitiveEvent
	var assembled []*domain.GraphEvent

	engine := runtime.NewEngine(runtime.WithSynthesisHooks(domain.SynthesisHooks{
		OnChainTraced:      func(_ context.Context, e *domain.ChainEvent) { chains = append(chains, e) },
		OnPrimitiveCreated: func(_ context.Context, e *domain.PrimitiveEvent) { created = append(created, e) },
		OnGraphAssembled:   func(_ context.Context, e *domain.GraphEvent) { assembled = append(assembled, e) },
	}))

	g := chunk("chunk", []string{"x", "untouched"},
		recorded("s1", domain.MoveAndPlace, "x", "a", "b"),
	)
	_, err := engine.CreateTransition(context.Background(), g)
	require.NoError(t, err)

	require.Len(t, chains, 2)
	assert.Equal(t, "x", chains[0].Root)
	assert.Equal(t, domain.OutcomeConverging, chains[0].Outcome)
	assert.Equal(t, 2, chains[0].Branches)
	assert.Equal(t, domain.OutcomeIdentity, chains[1].Outcome)

	require.Len(t, created, 1)
	assert.Equal(t, "Create", created[0].Primitive)
	assert.Equal(t, "CreateLiteral", created[0].Operator)
	assert.Equal(t, 2, created[0].Origins)
	assert.Equal(t, "chunk", created[0].GraphID)

	require.Len(t, assembled, 1)
	assert.Equal(t, "chunk", assembled[0].SourceID)
	assert.Equal(t, "Transition(chunk)", assembled[0].GraphID)
	assert.Equal(t, 2, assembled[0].Vertices)
}
