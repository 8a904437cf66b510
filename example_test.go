package montage_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/pkg/adapters/memory"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// ExampleNew_memory demonstrates synthesizing a transition from a graph built in code.
func ExampleNew_memory() {
	// 1. Record what a baking pass would have observed.
	create := primitive.NewRecorded("let x = 1", domain.CreateLiteral, 10)
	create.Bake(nil, []domain.AnimationData{{ID: "x", Location: domain.Location{"x"}}})

	move := primitive.NewRecorded("y = a", domain.MoveAndPlace, 10)
	move.Bake(
		[]domain.AnimationData{{ID: "a", Location: domain.Location{"a"}}},
		[]domain.AnimationData{{ID: "y", Location: domain.Location{"y"}}},
	)

	chunk := domain.NewGraph("chunk", domain.NodeData{Type: "Chunk"})
	chunk.AddVertex(create, domain.NodeData{Type: "Statement"})
	chunk.AddVertex(move, domain.NodeData{Type: "Statement"})
	chunk.Post = &domain.Snapshot{Data: []domain.Datum{
		{ID: "x", Kind: domain.DataLiteral, Location: domain.Location{"x"}, Value: 1},
		{ID: "y", Kind: domain.DataLiteral, Location: domain.Location{"y"}, Value: 2},
	}}

	// 2. Serve it from memory.
	loader, err := memory.NewLoader(chunk, nil)
	if err != nil {
		log.Fatal(err)
	}
	engine := montage.New(montage.WithLoader(loader))

	// 3. Synthesize.
	v, err := engine.Synthesize(context.Background())
	if err != nil {
		log.Fatal(err)
	}

	transition := v.(*domain.Graph)
	fmt.Println(transition.ID())
	for _, vertex := range transition.Vertices {
		fmt.Println("-", vertex.ID())
	}
	fmt.Println("starts:", transition.ParallelStarts)
	fmt.Println("duration:", transition.Duration())

	// Output:
	// Transition(chunk)
	// - Initialize(chunk)
	// - Create(x)
	// - Move(y)
	// starts: [0 1 1]
	// duration: 65
}
