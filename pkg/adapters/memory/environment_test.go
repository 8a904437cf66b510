package memory_test

import (
	"testing"

	"github.com/aretw0/montage/pkg/adapters/memory"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_AddAndResolve(t *testing.T) {
	env := memory.NewEnvironment()

	loc, err := env.AddDataAt(domain.Location{"x"}, &domain.Datum{ID: "d1", Kind: domain.DataLiteral, Value: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.Location{"x"}, loc)

	byPath, err := env.ResolvePath(domain.Location{"x"})
	require.NoError(t, err)
	assert.Equal(t, "d1", byPath.ID)

	byID, err := env.ResolvePath(domain.IDPath("d1"))
	require.NoError(t, err)
	assert.Same(t, byPath, byID)

	_, err = env.ResolvePath(domain.Location{"missing"})
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
}

func TestEnvironment_HeapAllocation(t *testing.T) {
	env := memory.NewEnvironment()

	l1, err := env.AddDataAt(nil, &domain.Datum{ID: "a"})
	require.NoError(t, err)
	l2, err := env.AddDataAt(nil, &domain.Datum{ID: "b"})
	require.NoError(t, err)

	assert.NotEqual(t, l1, l2)
	loc, ok := env.MemoryLocation(&domain.Datum{ID: "b"})
	assert.True(t, ok)
	assert.Equal(t, l2, loc)
}

func TestEnvironment_AddReplacesOccupant(t *testing.T) {
	env := memory.NewEnvironment()
	_, err := env.AddDataAt(domain.Location{"x"}, &domain.Datum{ID: "old"})
	require.NoError(t, err)
	_, err = env.AddDataAt(domain.Location{"x"}, &domain.Datum{ID: "new"})
	require.NoError(t, err)

	_, err = env.ResolvePath(domain.IDPath("old"))
	assert.ErrorIs(t, err, domain.ErrDataNotFound)
	assert.Len(t, env.Snapshot().Data, 1)
}

func TestEnvironment_CloneIsIndependent(t *testing.T) {
	env := memory.NewEnvironment()
	src := &domain.Datum{ID: "arr", Kind: domain.DataArray, Value: []any{1, 2}}

	c := env.CloneData(src)
	c.Value.([]any)[0] = 42

	assert.Equal(t, 1, src.Value.([]any)[0])
}

func TestEnvironment_FromSnapshotAndPaths(t *testing.T) {
	env, err := memory.FromSnapshot(&domain.Snapshot{Data: []domain.Datum{
		{ID: "a", Location: domain.Location{"a"}},
		{ID: "b", Location: domain.Location{"b"}},
	}})
	require.NoError(t, err)
	assert.Len(t, env.Snapshot().Data, 2)

	env.AddPath(&domain.Path{ID: "p2"})
	env.AddPath(&domain.Path{ID: "p1"})
	assert.Equal(t, []string{"p1", "p2"}, env.Paths())

	env.RemovePath("p1")
	assert.Nil(t, env.LookupPath("p1"))
	assert.NotNil(t, env.LookupPath("p2"))
}
