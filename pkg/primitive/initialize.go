package primitive

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
)

// Initialize establishes the baseline a transition animates against: every datum
// of its snapshot that does not resolve yet is loaded into the environment.
// It reads and writes nothing as far as scheduling is concerned.
type Initialize struct {
	domain.BaseNode

	Snapshot *domain.Snapshot
	ctx      Context
}

// NewInitialize creates the baseline node of the transition synthesized from sourceID.
// The snapshot is owned by the node; callers pass a clone.
func NewInitialize(sourceID string, snapshot *domain.Snapshot) *Initialize {
	n := &Initialize{
		BaseNode: domain.NewBaseNode("Initialize("+sourceID+")", "Initialize", 5),
		Snapshot: snapshot,
	}
	n.Bake(nil, nil)
	return n
}

func (n *Initialize) Begin(env domain.Environment) error {
	if n.ctx.Phase != PhaseIdle {
		return fmt.Errorf("%w: %s began twice", domain.ErrLifecycle, n.ID())
	}
	n.ctx.Phase = PhaseRunning
	return n.load(env)
}

func (n *Initialize) Seek(_ domain.Environment, t float64) error {
	if n.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s seeked outside begin/end", domain.ErrLifecycle, n.ID())
	}
	n.ctx.Progress = n.Ease(t)
	return nil
}

func (n *Initialize) End(domain.Environment) error {
	if n.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s ended without beginning", domain.ErrLifecycle, n.ID())
	}
	n.ctx.Phase = PhaseEnded
	n.ctx.Progress = 1
	return nil
}

func (n *Initialize) load(env domain.Environment) error {
	if n.Snapshot == nil {
		return nil
	}
	for i := range n.Snapshot.Data {
		d := &n.Snapshot.Data[i]
		if found, err := env.ResolvePath(domain.IDPath(d.ID)); err == nil && found != nil {
			continue
		}
		if _, err := env.AddDataAt(d.Location, env.CloneData(d)); err != nil {
			return fmt.Errorf("%s: load %s: %w", n.ID(), d.ID, err)
		}
	}
	return nil
}

func (n *Initialize) CloneVertex() domain.Vertex {
	return &Initialize{BaseNode: n.CloneBase(), Snapshot: n.Snapshot.Clone()}
}
