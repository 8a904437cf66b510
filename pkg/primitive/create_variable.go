package primitive

import "github.com/aretw0/montage/pkg/domain"

// CreateVariable binds a name to the value of its first origin.
type CreateVariable struct {
	transition
}

func NewCreateVariable(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &CreateVariable{transition: newTransition("CreateVariable", domain.PathBinding, 30, output, origins)}
}

func (c *CreateVariable) Begin(env domain.Environment) error { return c.begin(env) }

func (c *CreateVariable) Seek(_ domain.Environment, t float64) error { return c.seek(t) }

func (c *CreateVariable) End(env domain.Environment) error { return c.end(env, c.ApplyInvariant) }

func (c *CreateVariable) ApplyInvariant(env domain.Environment) error {
	return c.ensureOutput(env, c.reference)
}

func (c *CreateVariable) CloneVertex() domain.Vertex {
	return &CreateVariable{transition: c.cloneTransition()}
}
