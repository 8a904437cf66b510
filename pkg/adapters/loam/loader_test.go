package loam_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/pkg/adapters/loam"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/dsl"
	"github.com/aretw0/montage/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrayChunk(t *testing.T) *domain.Graph {
	t.Helper()
	b := dsl.New("chunk").Label("let arr = [a]")
	b.Step("arr-setup").Duration(5)
	b.Add("arr-literal").Op(domain.CreateArray).Duration(10).Reads("a").Writes("arr")
	b.Final("arr", domain.DataArray, []any{1})
	g, err := b.BuildGraph()
	require.NoError(t, err)
	return g
}

func TestLoader_PublishAndLoad(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo, err := loam.Open(dir, false)
	require.NoError(t, err)

	sel := &domain.Selection{ID: "chunk", Selection: []domain.Selection{{ID: "arr-literal"}}}
	require.NoError(t, loam.Publish(ctx, repo, arrayChunk(t), sel, "Recorded from the array demo."))

	loader := loam.New(repo, "chunk")
	ports.RunGraphLoaderContract(t, loader, "chunk")

	g, err := loader.LoadGraph(ctx)
	require.NoError(t, err)
	require.Len(t, g.Vertices, 2)
	assert.Equal(t, "let arr = [a]", g.NodeData().Label)
	assert.InDelta(t, 15.0, g.Duration(), 1e-9)

	loaded, err := loader.LoadSelection(ctx)
	require.NoError(t, err)
	assert.Equal(t, sel, loaded)

	notes, err := loader.Notes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Recorded from the array demo.", notes)
}

func TestLoader_ReadOnlyJSON(t *testing.T) {
	dir := t.TempDir()
	doc := `{
  "graph": {
    "id": "sum-chunk",
    "postcondition": {"data": [{"id": "x", "location": ["x"], "value": 9007199254740991}]},
    "vertices": [{
      "id": "sum",
      "operator": "CreateLiteral",
      "reads": [{"id": "a"}, {"id": "b"}],
      "writes": [{"id": "x", "location": ["x"]}]
    }]
  }
}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sum-chunk.json"), []byte(doc), 0o644))

	repo, err := loam.Open(dir, true)
	require.NoError(t, err)

	engine := montage.New(montage.WithLoader(loam.New(repo, "sum-chunk")))
	v, err := engine.Synthesize(context.Background())
	require.NoError(t, err)

	transition, ok := v.(*domain.Graph)
	require.True(t, ok)
	require.Len(t, transition.Vertices, 2)
	assert.Equal(t, "Create(x)", transition.Vertices[1].ID())
}

func TestLoader_MissingDocument(t *testing.T) {
	repo, err := loam.Open(t.TempDir(), false)
	require.NoError(t, err)

	_, err = loam.New(repo, "ghost").LoadGraph(context.Background())
	assert.Error(t, err)
}

func TestLoader_DocumentWithoutGraph(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "note.md"), []byte("---\ntitle: just a note\n---\nbody"), 0o644))

	repo, err := loam.Open(dir, true)
	require.NoError(t, err)

	_, err = loam.New(repo, "note").LoadGraph(context.Background())
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}
