package primitive

import (
	"fmt"

	"github.com/aretw0/montage/pkg/domain"
)

// ApplyInvariants jumps an environment straight to the state a transition graph
// ends in, without animating: the baseline is loaded, then every transition node
// re-asserts its effect in vertex order.
func ApplyInvariants(env domain.Environment, g *domain.Graph) error {
	for _, v := range g.Vertices {
		switch v.Kind() {
		case domain.KindGraph:
			if err := ApplyInvariants(env, v.(*domain.Graph)); err != nil {
				return err
			}
		case domain.KindNode:
			switch n := v.(type) {
			case domain.TransitionNode:
				if err := n.ApplyInvariant(env); err != nil {
					return err
				}
			case *Initialize:
				if err := n.load(env); err != nil {
					return err
				}
			}
		default:
			return fmt.Errorf("vertex %s: unknown kind %s", v.ID(), v.Kind())
		}
	}
	return nil
}

// Play runs a node through its whole lifecycle, seeking at the given times.
func Play(env domain.Environment, n domain.Node, times ...float64) error {
	if err := n.Begin(env); err != nil {
		return err
	}
	for _, t := range times {
		if err := n.Seek(env, t); err != nil {
			return err
		}
	}
	return n.End(env)
}
