package runtime

import (
	"context"

	"github.com/aretw0/montage/pkg/domain"
)

// Flatten walks a chain and returns every operator along every edge and every
// leaf reached. Operators come out in execution order: the operations that
// produced an input precede the operation that consumed it. The last operator
// is therefore the root edge, the one that landed the value, and that is the
// edge a single-branch chain is replayed with.
func Flatten(chain *domain.TraceChain) ([]domain.TraceOperator, []*domain.TraceChain) {
	if chain.IsLeaf() {
		return nil, nil
	}

	var operations []domain.TraceOperator
	var leaves []*domain.TraceChain
	for _, edge := range chain.Children {
		if edge.Chain.IsLeaf() {
			leaves = append(leaves, edge.Chain)
		}
		childOps, childLeaves := Flatten(edge.Chain)
		operations = append(operations, childOps...)
		operations = append(operations, edge.Operator)
		leaves = append(leaves, childLeaves...)
	}
	return operations, leaves
}

// Branches returns every root-to-leaf path of a chain as a standalone linear
// chain rooted at the original root value. Branches share no nodes with each
// other or with the input.
func Branches(chain *domain.TraceChain) []*domain.TraceChain {
	if chain.IsLeaf() {
		return []*domain.TraceChain{domain.Leaf(chain.Value)}
	}

	var out []*domain.TraceChain
	for _, edge := range chain.Children {
		for _, tail := range Branches(edge.Chain) {
			out = append(out, &domain.TraceChain{
				Value:    chain.Value,
				Children: []domain.TraceEdge{{Operator: edge.Operator, Chain: tail}},
			})
		}
	}
	return out
}

// Synthesize collapses each chain into at most one transition node.
//
// A chain without operations is an identity and yields nothing. A single branch
// is replayed with the last operation that landed the value. Converging
// branches are replayed as one creation from every leaf.
func (e *Engine) Synthesize(ctx context.Context, graphID string, chains []*domain.TraceChain) ([]domain.TransitionNode, error) {
	var out []domain.TransitionNode

	for _, chain := range chains {
		operations, leaves := Flatten(chain)
		if len(operations) == 0 {
			e.emitChainTraced(ctx, graphID, chain.Value, 0, 0, domain.OutcomeIdentity)
			continue
		}

		branches := Branches(chain)

		op := domain.CreateLiteral
		outcome := domain.OutcomeConverging
		if len(branches) == 1 {
			op = operations[len(operations)-1]
			outcome = domain.OutcomeLinear
		}
		// TODO: replay converging moves/copies as partial moves once primitives can animate them.

		origins := make([]*domain.AnimationData, 0, len(leaves))
		for _, leaf := range leaves {
			origins = append(origins, leaf.Value)
		}

		name, node, err := createTransitionNode(chain.Value, op, origins)
		if err != nil {
			return nil, err
		}

		e.logger.Debug("chain collapsed",
			"graph", graphID,
			"root", node.ID(),
			"operations", len(operations),
			"branches", len(branches),
			"outcome", outcome,
			"primitive", name)
		e.emitChainTraced(ctx, graphID, chain.Value, len(operations), len(branches), outcome)
		e.emitPrimitiveCreated(ctx, graphID, name, node, op)

		out = append(out, node)
	}

	return out, nil
}
