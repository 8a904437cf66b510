package runtime

import (
	"github.com/aretw0/montage/pkg/domain"
	"github.com/aretw0/montage/pkg/primitive"
)

// constructorFor maps every trace operator onto the primitive that replays it.
// The switch is exhaustive over domain.TraceOperators; anything else is a defect.
func constructorFor(op domain.TraceOperator) (string, primitive.Constructor, error) {
	switch op {
	case domain.MoveAndPlace, domain.CopyLiteral:
		return "Move", primitive.NewMove, nil
	case domain.CreateLiteral:
		return "Create", primitive.NewCreate, nil
	case domain.CreateArray:
		return "CreateArray", primitive.NewCreateArray, nil
	case domain.CreateReference:
		return "CreateReference", primitive.NewCreateReference, nil
	case domain.CreateVariable:
		return "CreateVariable", primitive.NewCreateVariable, nil
	case domain.Place:
		return "Place", primitive.NewPlace, nil
	default:
		return "", nil, &domain.UnsupportedOperatorError{Operator: op}
	}
}

// createTransitionNode builds the node for output, dropping origins that have no
// memory identity. The primitive records reads = origins and writes = [output].
func createTransitionNode(output *domain.AnimationData, op domain.TraceOperator, origins []*domain.AnimationData) (string, domain.TransitionNode, error) {
	name, ctor, err := constructorFor(op)
	if err != nil {
		return "", nil, err
	}
	return name, ctor(output, domain.CompactData(origins)), nil
}
