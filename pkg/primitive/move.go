package primitive

import "github.com/aretw0/montage/pkg/domain"

// Move carries an existing value onto its final location. Copies are replayed
// the same way: at this level a copy is indistinguishable from a move.
type Move struct {
	transition
}

// NewMove creates a move transition.
func NewMove(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &Move{transition: newTransition("Move", domain.PathMovement, 60, output, origins)}
}

func (m *Move) Begin(env domain.Environment) error { return m.begin(env) }

func (m *Move) Seek(_ domain.Environment, t float64) error { return m.seek(t) }

func (m *Move) End(env domain.Environment) error { return m.end(env, m.ApplyInvariant) }

// ApplyInvariant makes the output resolve, cloning the moved value if needed.
func (m *Move) ApplyInvariant(env domain.Environment) error {
	return m.ensureOutput(env, m.cloneOrigin)
}

func (m *Move) CloneVertex() domain.Vertex {
	return &Move{transition: m.cloneTransition()}
}
