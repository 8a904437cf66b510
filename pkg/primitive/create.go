package primitive

import "github.com/aretw0/montage/pkg/domain"

// Create shows a value coming into existence from its origins. It is also the
// primitive chosen when several provenances converge on one value.
type Create struct {
	transition
}

// NewCreate creates a literal creation transition.
func NewCreate(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &Create{transition: newTransition("Create", domain.PathCreation, 30, output, origins)}
}

func (c *Create) Begin(env domain.Environment) error { return c.begin(env) }

func (c *Create) Seek(_ domain.Environment, t float64) error { return c.seek(t) }

func (c *Create) End(env domain.Environment) error { return c.end(env, c.ApplyInvariant) }

func (c *Create) ApplyInvariant(env domain.Environment) error {
	return c.ensureOutput(env, func(domain.Environment) *domain.Datum {
		return &domain.Datum{Kind: domain.DataLiteral}
	})
}

func (c *Create) CloneVertex() domain.Vertex {
	return &Create{transition: c.cloneTransition()}
}
