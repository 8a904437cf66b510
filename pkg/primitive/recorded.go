package primitive

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
)

// Step is a node captured during a concrete execution that maps to no trace
// operator, such as evaluation bookkeeping. Trace extraction skips it.
// Its lifecycle enforces ordering but does not touch memory.
type Step struct {
	domain.BaseNode

	ctx Context
}

// NewStep creates an unbaked step. Call Bake to attach its dependency sets.
func NewStep(id, name string, duration float64) *Step {
	return &Step{BaseNode: domain.NewBaseNode(id, name, duration)}
}

// Context returns the node's per-run state.
func (s *Step) Context() Context { return s.ctx }

func (s *Step) Begin(domain.Environment) error {
	if s.ctx.Phase != PhaseIdle {
		return fmt.Errorf("%w: %s began twice", domain.ErrLifecycle, s.ID())
	}
	s.ctx.Phase = PhaseRunning
	return nil
}

func (s *Step) Seek(_ domain.Environment, t float64) error {
	if s.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s seeked outside begin/end", domain.ErrLifecycle, s.ID())
	}
	s.ctx.Progress = s.Ease(t)
	return nil
}

func (s *Step) End(domain.Environment) error {
	if s.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s ended without beginning", domain.ErrLifecycle, s.ID())
	}
	s.ctx.Phase = PhaseEnded
	s.ctx.Progress = 1
	return nil
}

func (s *Step) CloneVertex() domain.Vertex {
	return &Step{BaseNode: s.CloneBase()}
}

// Recorded is a step the baking pass attributed to a trace operator.
type Recorded struct {
	Step

	Operator domain.TraceOperator
}

// NewRecorded creates an unbaked recorded node. Call Bake to attach its dependency sets.
func NewRecorded(id string, op domain.TraceOperator, duration float64) *Recorded {
	return &Recorded{
		Step:     Step{BaseNode: domain.NewBaseNode(id, op.String(), duration)},
		Operator: op,
	}
}

// TraceOperator implements domain.Traced.
func (r *Recorded) TraceOperator() domain.TraceOperator { return r.Operator }

func (r *Recorded) CloneVertex() domain.Vertex {
	return &Recorded{Step: Step{BaseNode: r.CloneBase()}, Operator: r.Operator}
}
