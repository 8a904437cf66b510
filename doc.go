/*
Package montage synthesizes transition animations from baked animation graphs.

A baked graph records, for every animation node, which memory values it read and
wrote during one concrete execution. From that record montage reconstructs how
every value in the final state came to be, and replays each reconstruction as a
single primitive (move, place or one of the create operations). The result is a
transition graph: a parallel graph that restores the final state and then plays
every reconstruction at once.

# Concept

Synthesis runs in three stages:

  - Trace: for each value of the final state, walk back through the nodes that
    produced it, yielding a trace chain that ends at values not produced inside
    the graph.
  - Collapse: a chain without operations is an identity and is skipped. A linear
    chain is replayed with the operation that landed the value. Converging
    chains are replayed as one creation from all of their sources.
  - Assemble: the primitives are scheduled together after an initialization node.

A Selection restricts synthesis to chosen sub-graphs, producing a sequential graph
of their transitions.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/montage"
		"github.com/aretw0/montage/pkg/adapters/fixture"
	)

	func main() {
		engine := montage.New(montage.WithLoader(fixture.New("./chunk.yaml")))

		transition, err := engine.Synthesize(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		log.Println("synthesized", transition.ID(), "lasting", transition.Duration())
	}
*/
package montage
