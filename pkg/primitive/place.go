package primitive

import "github.com/aretw0/montage/pkg/domain"

// Place lowers a floating value into the slot it ends up in.
type Place struct {
	transition
}

// NewPlace creates a placement transition.
func NewPlace(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &Place{transition: newTransition("Place", domain.PathPlacement, 30, output, origins)}
}

func (p *Place) Begin(env domain.Environment) error { return p.begin(env) }

func (p *Place) Seek(_ domain.Environment, t float64) error { return p.seek(t) }

func (p *Place) End(env domain.Environment) error { return p.end(env, p.ApplyInvariant) }

func (p *Place) ApplyInvariant(env domain.Environment) error {
	return p.ensureOutput(env, p.cloneOrigin)
}

func (p *Place) CloneVertex() domain.Vertex {
	return &Place{transition: p.cloneTransition()}
}
