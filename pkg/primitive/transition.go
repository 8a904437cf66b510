package primitive

import (
	"fmt"
	"slices"

	"github.com/aretw0/montage/pkg/domain"
)

// Constructor builds a transition node for an output reconstructed from origins.
type Constructor func(output *domain.AnimationData, origins []domain.AnimationData) domain.TransitionNode

// Phase tracks where a node is in its begin/seek/end lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseEnded
)

// Context is the per-node scratch record of a running primitive.
type Context struct {
	Phase    Phase
	Progress float64
	Path     *domain.Path
}

// transition is embedded by every primitive.
type transition struct {
	domain.BaseNode

	output   *domain.AnimationData
	origins  []domain.AnimationData
	pathKind domain.PathKind
	ctx      Context
}

func newTransition(name string, kind domain.PathKind, duration float64, output *domain.AnimationData, origins []domain.AnimationData) transition {
	var out *domain.AnimationData
	if output != nil {
		c := *output
		out = &c
	}
	t := transition{
		BaseNode: domain.NewBaseNode(nodeID(name, out), name, duration),
		output:   out,
		origins:  slices.Clone(origins),
		pathKind: kind,
	}
	var writes []domain.AnimationData
	if out != nil {
		writes = []domain.AnimationData{*out}
	}
	t.Bake(t.origins, writes)
	return t
}

func nodeID(name string, output *domain.AnimationData) string {
	if output == nil {
		return name + "()"
	}
	return fmt.Sprintf("%s(%s)", name, output.ID)
}

func (t *transition) Output() *domain.AnimationData { return t.output }

func (t *transition) Origins() []domain.AnimationData { return t.origins }

// Context exposes the run state, mostly for hosts inspecting playback.
func (t *transition) Context() Context { return t.ctx }

func (t *transition) cloneTransition() transition {
	c := *t
	c.BaseNode = t.CloneBase()
	c.origins = slices.Clone(t.origins)
	if t.output != nil {
		o := *t.output
		c.output = &o
	}
	c.ctx = Context{}
	return c
}

func (t *transition) pathID() string {
	return string(t.pathKind) + t.ID()
}

// begin registers the node's path, reusing one already present.
func (t *transition) begin(env domain.Environment) error {
	if t.ctx.Phase != PhaseIdle {
		return fmt.Errorf("%w: %s began twice", domain.ErrLifecycle, t.ID())
	}
	t.ctx.Phase = PhaseRunning
	t.ctx.Progress = 0
	t.ctx.Path = t.ensurePath(env)
	return nil
}

func (t *transition) seek(t01 float64) error {
	if t.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s seeked outside begin/end", domain.ErrLifecycle, t.ID())
	}
	t.ctx.Progress = t.Ease(t01)
	if t.ctx.Path != nil {
		t.ctx.Path.Progress = t.ctx.Progress
	}
	return nil
}

func (t *transition) end(env domain.Environment, invariant func(domain.Environment) error) error {
	if t.ctx.Phase != PhaseRunning {
		return fmt.Errorf("%w: %s ended without beginning", domain.ErrLifecycle, t.ID())
	}
	if err := invariant(env); err != nil {
		return err
	}
	if reg, ok := env.(domain.PathRegistry); ok {
		reg.RemovePath(t.pathID())
	}
	t.ctx.Phase = PhaseEnded
	t.ctx.Progress = 1
	t.ctx.Path = nil
	return nil
}

func (t *transition) ensurePath(env domain.Environment) *domain.Path {
	reg, ok := env.(domain.PathRegistry)
	if !ok {
		return nil
	}
	if p := reg.LookupPath(t.pathID()); p != nil {
		return p
	}
	p := &domain.Path{
		ID:   t.pathID(),
		Kind: t.pathKind,
		From: t.originLocations(env),
	}
	if t.output != nil {
		p.To = t.output.Location
	}
	reg.AddPath(p)
	return p
}

// originLocations resolves where every origin currently lives, falling back to the
// recorded location when the datum cannot be found.
func (t *transition) originLocations(env domain.Environment) []domain.Location {
	out := make([]domain.Location, 0, len(t.origins))
	for _, o := range t.origins {
		loc := o.Location
		if d, err := env.ResolvePath(domain.IDPath(o.ID)); err == nil && d != nil {
			if found, ok := env.MemoryLocation(d); ok {
				loc = found
			}
		}
		out = append(out, loc)
	}
	return out
}

// firstOrigin returns the first origin that still resolves.
func (t *transition) firstOrigin(env domain.Environment) *domain.Datum {
	for _, o := range t.origins {
		if d, err := env.ResolvePath(domain.IDPath(o.ID)); err == nil && d != nil {
			return d
		}
	}
	return nil
}

// ensureOutput materializes the output when it does not resolve. It is the shared
// body of every ApplyInvariant and is safe to call repeatedly.
func (t *transition) ensureOutput(env domain.Environment, materialize func(domain.Environment) *domain.Datum) error {
	if t.output == nil {
		return nil
	}
	if d, err := env.ResolvePath(domain.IDPath(t.output.ID)); err == nil && d != nil {
		return nil
	}
	datum := materialize(env)
	datum.ID = t.output.ID
	if _, err := env.AddDataAt(t.output.Location, datum); err != nil {
		return fmt.Errorf("%s: materialize %s: %w", t.ID(), t.output.ID, err)
	}
	return nil
}

// cloneOrigin copies the first resolvable origin, or yields an empty literal.
func (t *transition) cloneOrigin(env domain.Environment) *domain.Datum {
	if src := t.firstOrigin(env); src != nil {
		return env.CloneData(src)
	}
	return &domain.Datum{Kind: domain.DataLiteral}
}
