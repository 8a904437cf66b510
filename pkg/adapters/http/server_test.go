package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/montage"
	adapter "github.com/aretw0/montage/pkg/adapters/http"
	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sumChunk = `{
  "graph": {
    "id": "chunk",
    "postcondition": {"data": [{"id": "x", "kind": "literal", "location": ["x"], "value": 3}]},
    "vertices": [
      {
        "id": "sum",
        "operator": "CreateLiteral",
        "reads": [{"id": "a", "location": ["a"]}, {"id": "b", "location": ["b"]}],
        "writes": [{"id": "x", "location": ["x"]}]
      }
    ]
  }
}`

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	h := adapter.NewHandler(montage.New())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, montage.Version, body["version"])
}

func TestPreflight(t *testing.T) {
	h := adapter.NewHandler(montage.New())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/transition", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestTrace(t *testing.T) {
	rec := post(t, adapter.NewHandler(montage.New()), "/trace", sumChunk)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp adapter.TraceResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "chunk", resp.GraphID)
	require.Len(t, resp.Chains, 1)

	x := resp.Chains[0]
	assert.Equal(t, "x", x.Value.ID)
	require.Len(t, x.Children, 2)
	for _, edge := range x.Children {
		assert.Equal(t, "CreateLiteral", edge.Operator)
		assert.Empty(t, edge.Chain.Children)
	}
	assert.Equal(t, "a", x.Children[0].Chain.Value.ID)
	assert.Equal(t, "b", x.Children[1].Chain.Value.ID)
}

func TestTransition(t *testing.T) {
	rec := post(t, adapter.NewHandler(montage.New()), "/transition", sumChunk)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc dto.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))

	g := doc.Graph
	assert.Equal(t, "Transition(chunk)", g.ID)
	assert.True(t, g.Parallel)
	assert.Equal(t, []int{0, 1}, g.ParallelStarts)
	require.Len(t, g.Vertices, 2)

	assert.Equal(t, "Initialize", g.Vertices[0].Primitive)
	require.NotNil(t, g.Vertices[0].Snapshot)

	create := g.Vertices[1]
	assert.Equal(t, "Create", create.Primitive)
	assert.Equal(t, "x", create.Output.ID)
	require.Len(t, create.Origins, 2)
	assert.Equal(t, "a", create.Origins[0].ID)
}

func TestTransition_Selection(t *testing.T) {
	body := strings.Replace(sumChunk, `"graph": {`,
		`"selection": {"id": "chunk", "selection": [{"id": "sum"}]}, "graph": {`, 1)

	rec := post(t, adapter.NewHandler(montage.New()), "/transition", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc dto.Document
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&doc))
	assert.Equal(t, "Transition(chunk)", doc.Graph.ID)
	assert.False(t, doc.Graph.Parallel)
	require.Len(t, doc.Graph.Vertices, 1)

	sum := doc.Graph.Vertices[0]
	assert.Equal(t, "sum", sum.ID)
	assert.Equal(t, "CreateLiteral", sum.Operator, "atomic selections are cloned, not synthesized")
	assert.Empty(t, sum.Primitive)
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
	}{
		{"malformed json", "/transition", `{"graph":`, http.StatusBadRequest},
		{"missing graph id", "/trace", `{"graph": {"vertices": []}}`, http.StatusBadRequest},
		{"unknown field", "/trace", `{"graph": {"id": "g", "colour": "red"}}`, http.StatusBadRequest},
		{"unknown operator", "/trace", `{"graph": {"id": "g", "vertices": [{"id": "n", "operator": "Teleport"}]}}`, http.StatusBadRequest},
		{"unbaked", "/transition", `{"graph": {"id": "g", "vertices": [{"id": "n", "operator": "Place"}]}}`, http.StatusUnprocessableEntity},
		{"dangling selection", "/transition", strings.Replace(sumChunk, `"graph": {`,
			`"selection": {"id": "chunk", "selection": [{"id": "ghost"}]}, "graph": {`, 1), http.StatusUnprocessableEntity},
	}

	h := adapter.NewHandler(montage.New())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(t, h, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())

			var body map[string]string
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestValidate(t *testing.T) {
	h := adapter.NewHandler(montage.New())

	rec := post(t, h, "/validate", sumChunk)
	require.Equal(t, http.StatusOK, rec.Code)
	var ok adapter.ValidateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&ok))
	assert.True(t, ok.Valid)
	assert.Empty(t, ok.Issues)

	rec = post(t, h, "/validate", `{
	  "graph": {"id": "g", "vertices": [{"id": "n", "operator": "Place"}]},
	  "selection": {"id": "g", "selection": [{"id": "ghost"}]}
	}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var bad adapter.ValidateResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&bad))
	assert.False(t, bad.Valid)
	require.Len(t, bad.Issues, 2)
	assert.Contains(t, bad.Issues[0], "not baked")
	assert.Contains(t, bad.Issues[1], "ghost")
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	h := adapter.NewHandler(
		montage.New(montage.WithSynthesisHooks(metrics.Hooks())),
		adapter.WithGatherer(reg),
	)

	require.Equal(t, http.StatusOK, post(t, h, "/transition", sumChunk).Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `montage_primitives_total{operator="CreateLiteral",primitive="Create"} 1`)
}

func TestMetrics_NotMounted(t *testing.T) {
	h := adapter.NewHandler(montage.New())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
