package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/montage/internal/presentation/graph"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
	"github.com/stretchr/testify/assert"
)

func TestGenerateMermaid(t *testing.T) {
	recorded := primitive.NewRecorded("s-1", domain.Place, 10)
	step := primitive.NewStep("setup", "Setup", 5)

	inner := domain.NewGraph("decl.y", domain.NodeData{})
	inner.AddVertex(step, domain.NodeData{})
	inner.AddVertex(recorded, domain.NodeData{})

	tr := domain.NewGraph("Transition(chunk)", domain.NodeData{})
	tr.AddVertex(primitive.NewInitialize("chunk", nil), domain.NodeData{})
	tr.AddVertex(primitive.NewMove(domain.DataRef("x"), nil), domain.NodeData{})
	tr.AddVertex(primitive.NewCreate(domain.DataRef("y"), nil), domain.NodeData{})
	tr.IsParallel = true
	tr.ParallelStarts = []int{0, 1, 1}

	root := domain.NewGraph("root", domain.NodeData{})
	root.AddVertex(inner, domain.NodeData{})
	root.AddVertex(tr, domain.NodeData{})

	tests := []struct {
		name     string
		overlay  *graph.GraphOverlay
		contains []string
		absent   []string
	}{
		{
			name: "Shapes",
			contains: []string{
				`Initialize_chunk_(("Initialize(chunk) <br/> 5"))`,
				`Move_x_[["Move(x) <br/> 60"]]`,
				`s_1[/"s-1 <br/> 10"/]`,
				`setup["setup <br/> 5"]`,
			},
		},
		{
			name: "Subgraphs",
			contains: []string{
				`subgraph decl_y["decl.y"]`,
				`subgraph Transition_chunk_["Transition(chunk) ∥"]`,
			},
		},
		{
			name: "Sequential Edges",
			contains: []string{
				"setup --> s_1",
				"decl_y --> Transition_chunk_",
			},
		},
		{
			name: "Parallel Fan Out",
			contains: []string{
				"Initialize_chunk_ --> Move_x_",
				"Initialize_chunk_ --> Create_y_",
			},
			absent: []string{"Move_x_ --> Create_y_"},
		},
		{
			name:     "Overlay",
			overlay:  &graph.GraphOverlay{Selected: []string{"decl.y", "decl.y"}},
			contains: []string{"classDef selected", "class decl_y selected;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(root, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.absent {
				assert.NotContains(t, got, unwanted)
			}
			if tt.overlay != nil {
				assert.Equal(t, 1, strings.Count(got, "class decl_y selected;"))
			}
		})
	}
}

func TestGenerateTraceMermaid(t *testing.T) {
	chain := &domain.TraceChain{
		Value: domain.DataRef("x", "x"),
		Children: []domain.TraceEdge{
			{Operator: domain.Place, Chain: &domain.TraceChain{
				Value:    domain.DataRef("y"),
				Children: []domain.TraceEdge{{Operator: domain.MoveAndPlace, Chain: domain.Leaf(domain.DataRef("a"))}},
			}},
			{Operator: domain.CreateLiteral, Chain: domain.Leaf(nil)},
		},
	}

	got := graph.GenerateTraceMermaid([]*domain.TraceChain{chain})

	assert.True(t, strings.HasPrefix(got, "graph LR\n"))
	assert.Contains(t, got, `v0("x <br/> x")`)
	assert.Contains(t, got, `v1("y")`)
	assert.Contains(t, got, `v2[("a")]`)
	assert.Contains(t, got, `v2 -- "MoveAndPlace" --> v1`)
	assert.Contains(t, got, `v1 -- "Place" --> v0`)
	assert.Contains(t, got, `v3[("∅")]`)
	assert.Contains(t, got, `v3 -- "CreateLiteral" --> v0`)
}
