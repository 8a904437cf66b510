package primitive

import "github.com/aretw0/montage/pkg/domain"

// CreateReference materializes a reference pointing at its first origin.
type CreateReference struct {
	transition
}

func NewCreateReference(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode {
	return &CreateReference{transition: newTransition("CreateReference", domain.PathReference, 30, output, origins)}
}

func (c *CreateReference) Begin(env domain.Environment) error { return c.begin(env) }

func (c *CreateReference) Seek(_ domain.Environment, t float64) error { return c.seek(t) }

func (c *CreateReference) End(env domain.Environment) error {
	return c.end(env, c.ApplyInvariant)
}

func (c *CreateReference) ApplyInvariant(env domain.Environment) error {
	return c.ensureOutput(env, c.reference)
}

func (c *CreateReference) CloneVertex() domain.Vertex {
	return &CreateReference{transition: c.cloneTransition()}
}

// reference builds the datum shared by references and variable bindings.
func (t *transition) reference(domain.Environment) *domain.Datum {
	d := &domain.Datum{Kind: domain.DataReference}
	if len(t.origins) > 0 {
		d.Value = t.origins[0].ID
	}
	return d
}
