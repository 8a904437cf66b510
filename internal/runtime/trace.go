package runtime

import (
	"context"

	"github.com/aretw0/montage/pkg/domain"
)

// Trace extracts one trace chain per root output of a baked graph.
//
// Roots are the values of the last vertex's postcondition, in order. Each chain
// regresses from the final state of its value through the traced nodes that
// produced it, back to values that were not produced inside the graph.
func (e *Engine) Trace(ctx context.Context, g *domain.Graph) ([]*domain.TraceChain, error) {
	nodes := g.Leaves()
	for _, n := range nodes {
		if !n.Baked() {
			return nil, &domain.UnbakedTraceError{NodeID: n.ID()}
		}
	}

	t := &tracer{nodes: nodes, memo: make(map[traceKey]*domain.TraceChain)}
	roots := traceRoots(g)
	chains := make([]*domain.TraceChain, 0, len(roots))
	for i := range roots {
		chains = append(chains, t.chain(&roots[i], len(nodes)))
	}

	e.logger.Debug("trace extracted", "graph", g.ID(), "nodes", len(nodes), "roots", len(roots))
	return chains, nil
}

// traceRoots returns the postcondition values of the chunk's final vertex,
// deduplicated by identity.
func traceRoots(g *domain.Graph) []domain.AnimationData {
	snapshot := g.Postcondition()
	if last := g.Last(); last != nil && last.Postcondition() != nil {
		snapshot = last.Postcondition()
	}

	seen := make(map[string]bool)
	var roots []domain.AnimationData
	for _, v := range snapshot.Values() {
		if seen[v.ID] {
			continue
		}
		seen[v.ID] = true
		roots = append(roots, v)
	}
	return roots
}

type traceKey struct {
	id     string
	before int
}

// tracer resolves producers over the flattened, baked node sequence.
type tracer struct {
	nodes []domain.Node
	memo  map[traceKey]*domain.TraceChain
}

// chain builds the provenance of value as it stood just before nodes[before].
// Inputs are always resolved strictly before their consumer, so recursion ends.
// A node that reads the value it writes (an in-place move, an element pushed
// into an existing array) regresses into the value's earlier producer.
func (t *tracer) chain(value *domain.AnimationData, before int) *domain.TraceChain {
	if value == nil {
		return domain.Leaf(nil)
	}

	key := traceKey{id: value.ID, before: before}
	if c, ok := t.memo[key]; ok {
		return &domain.TraceChain{Value: value, Children: c.Children}
	}

	idx, op := t.producer(value.ID, before)
	if idx < 0 {
		leaf := domain.Leaf(value)
		t.memo[key] = leaf
		return leaf
	}

	var children []domain.TraceEdge
	seen := make(map[string]bool)
	for _, r := range t.nodes[idx].Reads() {
		if seen[r.ID] {
			continue
		}
		seen[r.ID] = true
		input := r
		children = append(children, domain.TraceEdge{Operator: op, Chain: t.chain(&input, idx)})
	}
	if len(children) == 0 {
		// Produced from nothing that has a memory identity, e.g. a fresh literal.
		children = []domain.TraceEdge{{Operator: op, Chain: domain.Leaf(nil)}}
	}

	c := &domain.TraceChain{Value: value, Children: children}
	t.memo[key] = c
	return c
}

// producer finds the last traced node before the cursor whose primary write is id.
func (t *tracer) producer(id string, before int) (int, domain.TraceOperator) {
	for i := before - 1; i >= 0; i-- {
		traced, ok := t.nodes[i].(domain.Traced)
		if !ok {
			continue
		}
		writes := t.nodes[i].Writes()
		if len(writes) > 0 && writes[0].ID == id {
			return i, traced.TraceOperator()
		}
	}
	return -1, 0
}
