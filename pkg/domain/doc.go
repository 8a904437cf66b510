/*
Package domain contains the core models of the montage transition engine.

It defines the animation graph (a tagged union of atomic nodes and nested graphs), the data
references animations read and write, the trace chains that record how a value came to exist,
and the capability interfaces of the simulated memory. This package is kept pure: it performs
no I/O and never mutates an Environment on its own.

# Key Entities

  - AnimationData: A reference to a piece of simulated memory, identified by ID.
  - Vertex: Either an atomic Node or a nested Graph, discriminated by Kind.
  - Graph: An ordered, optionally parallel container of vertices with pre/postconditions.
  - TraceChain: The provenance tree of one value, regressing to leaves.
  - TransitionNode: A synthesized node that replays the reconstruction of one value.
*/
package domain
