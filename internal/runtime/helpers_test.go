package runtime_test

import (
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

func ref(id string) domain.AnimationData {
	return domain.AnimationData{ID: id, Location: domain.Location{id}}
}

// recorded builds a baked node that wrote `write` (if non-empty) from reads.
func recorded(id string, op domain.TraceOperator, write string, reads ...string) *primitive.Recorded {
	n := primitive.NewRecorded(id, op, 10)
	var r, w []domain.AnimationData
	for _, x := range reads {
		r = append(r, ref(x))
	}
	if write != "" {
		w = append(w, ref(write))
	}
	n.Bake(r, w)
	return n
}

func snapshot(ids ...string) *domain.Snapshot {
	s := &domain.Snapshot{}
	for _, id := range ids {
		s.Data = append(s.Data, domain.Datum{ID: id, Kind: domain.DataLiteral, Location: domain.Location{id}, Value: 0})
	}
	return s
}

// chunk assembles a baked source graph whose final state holds post.
func chunk(id string, post []string, nodes ...domain.Vertex) *domain.Graph {
	g := domain.NewGraph(id, domain.NodeData{Type: "Chunk", Label: id})
	for _, n := range nodes {
		g.AddVertex(n, domain.NodeData{Type: "Statement"})
	}
	g.Pre = snapshot()
	g.Post = snapshot(post...)
	return g
}

// untraced builds a baked node that maps to no trace operator.
func untraced(id, write string) *primitive.Step {
	n := primitive.NewStep(id, "Setup", 1)
	n.Bake(nil, []domain.AnimationData{ref(write)})
	return n
}
