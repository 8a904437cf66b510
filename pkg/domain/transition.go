package domain

// NodeData types assigned while assembling a transition graph.
const (
	TypeTransition          = "Transition"
	TypeTransitionAnimation = "Transition Animation"
	TypeTransitionPrimitive = "Transition Primitive"
)

// TransitionID derives the id of a transition synthesized from a source vertex.
func TransitionID(sourceID string) string {
	return "Transition(" + sourceID + ")"
}

// TransitionNode is a node synthesized to replay the reconstruction of one value.
type TransitionNode interface {
	Node

	// Output is the value being reconstructed; nil when it has no memory identity.
	Output() *AnimationData
	// Origins are the values it was reconstructed from, never containing nil entries.
	Origins() []AnimationData

	// ApplyInvariant re-asserts the node's memory effect without running the
	// lifecycle. It must be idempotent.
	ApplyInvariant(env Environment) error
}
