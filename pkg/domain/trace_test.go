package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceOperator_RoundTripNames(t *testing.T) {
	for _, op := range domain.TraceOperators() {
		parsed, err := domain.ParseTraceOperator(op.String())
		require.NoError(t, err)
		assert.Equal(t, op, parsed)
	}

	_, err := domain.ParseTraceOperator("Teleport")
	assert.ErrorIs(t, err, domain.ErrUnsupportedOperator)
}

func TestTraceChain_Shape(t *testing.T) {
	leaf := domain.Leaf(domain.DataRef("a"))
	assert.True(t, leaf.IsLeaf())
	assert.Equal(t, 0, leaf.Depth())

	mid := &domain.TraceChain{
		Value:    domain.DataRef("y"),
		Children: []domain.TraceEdge{{Operator: domain.MoveAndPlace, Chain: leaf}},
	}
	root := &domain.TraceChain{
		Value:    domain.DataRef("x"),
		Children: []domain.TraceEdge{{Operator: domain.Place, Chain: mid}},
	}
	assert.False(t, root.IsLeaf())
	assert.Equal(t, 2, root.Depth())
}

func TestErrors_MatchSentinels(t *testing.T) {
	var err error = &domain.UnbakedTraceError{NodeID: "n1"}
	assert.ErrorIs(t, err, domain.ErrUnbakedTrace)
	assert.Contains(t, err.Error(), "n1")

	err = &domain.DanglingSelectionError{GraphID: "g", VertexID: "v"}
	assert.ErrorIs(t, err, domain.ErrDanglingSelection)

	var dangling *domain.DanglingSelectionError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "v", dangling.VertexID)
}

func TestLocation_IDPath(t *testing.T) {
	id, ok := domain.IDPath("d1").IsIDPath()
	assert.True(t, ok)
	assert.Equal(t, "d1", id)

	_, ok = domain.Location{"x", "0"}.IsIDPath()
	assert.False(t, ok)
	assert.Equal(t, "x.0", domain.Location{"x", "0"}.String())
}

func TestCompactData_DropsNil(t *testing.T) {
	out := domain.CompactData([]*domain.AnimationData{domain.DataRef("a"), nil, domain.DataRef("b")})
	assert.Equal(t, []domain.AnimationData{{ID: "a"}, {ID: "b"}}, out)
}

func TestEasing_Bounds(t *testing.T) {
	assert.InDelta(t, 0, domain.EaseInOutCubic(0), 1e-9)
	assert.InDelta(t, 0.5, domain.EaseInOutCubic(0.5), 1e-9)
	assert.InDelta(t, 1, domain.EaseInOutCubic(1), 1e-9)
}
