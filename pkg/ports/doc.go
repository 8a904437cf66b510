/*
Package ports defines the driven ports (interfaces) of the montage engine.

These interfaces decouple synthesis from where baked graphs come from and from the
adapters that expose it, so the same engine serves the CLI, HTTP and MCP.

# Key Interfaces

  - GraphLoader: supplies the baked graph a transition is synthesized from (fixture files, memory).
  - SelectionLoader: optionally supplies the selection stored alongside that graph.
  - Synthesizer: the stateless engine surface consumed by the HTTP and MCP adapters.
*/
package ports
