package primitive

import "github.com/aretw0/montage/pkg/domain"

// CreateArray materializes an empty array at the output location.
type CreateArray struct {
	transition
}

func NewCreateArray(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &CreateArray{transition: newTransition("CreateArray", domain.PathArrayCreation, 10, output, origins)}
}

func (c *CreateArray) Begin(env domain.Environment) error { return c.begin(env) }

func (c *CreateArray) Seek(_ domain.Environment, t float64) error { return c.seek(t) }

func (c *CreateArray) End(env domain.Environment) error { return c.end(env, c.ApplyInvariant) }

// ApplyInvariant keeps the creation path registered and the array allocated.
func (c *CreateArray) ApplyInvariant(env domain.Environment) error {
	c.ensurePath(env)
	return c.ensureOutput(env, func(domain.Environment) *domain.Datum {
		return &domain.Datum{Kind: domain.DataArray, Value: []any{}}
	})
}

func (c *CreateArray) CloneVertex() domain.Vertex {
	return &CreateArray{transition: c.cloneTransition()}
}
