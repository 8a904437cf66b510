package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/montage/internal/runtime"
	"github.com/aretw0/montage/pkg/domain"
)

// Explain builds a markdown report of how a transition was derived from its
// source: one row per traced root, then the schedule of the transition.
func Explain(source *domain.Graph, chains []*domain.TraceChain, transition *domain.Graph) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", transition.ID())
	if label := source.NodeData().Label; label != "" {
		fmt.Fprintf(&sb, "> %s\n\n", label)
	}
	fmt.Fprintf(&sb, "Source `%s`: %d nodes, %d traced roots.\n\n", source.ID(), len(source.Leaves()), len(chains))

	byOutput := make(map[string]domain.TransitionNode)
	for _, v := range transition.Vertices {
		if n, ok := v.(domain.TransitionNode); ok && n.Output() != nil {
			byOutput[n.Output().ID] = n
		}
	}

	sb.WriteString("## Trace\n\n")
	sb.WriteString("| Root | Operations | Branches | Outcome | Primitive | Origins |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for _, c := range chains {
		ops, _ := runtime.Flatten(c)
		root := "∅"
		if c.Value != nil {
			root = c.Value.ID
		}

		outcome, primitive, origins := "identity", "", ""
		if len(ops) > 0 {
			outcome = "linear"
			if len(runtime.Branches(c)) > 1 {
				outcome = "converging"
			}
			if n, ok := byOutput[root]; ok {
				primitive = "`" + n.ID() + "`"
				origins = joinIDs(n.Origins())
			}
		}

		names := make([]string, 0, len(ops))
		for _, op := range ops {
			names = append(names, op.String())
		}
		fmt.Fprintf(&sb, "| `%s` | %s | %d | %s | %s | %s |\n",
			root, strings.Join(names, " → "), len(runtime.Branches(c)), outcome, primitive, origins)
	}

	sb.WriteString("\n## Schedule\n\n")
	sb.WriteString("| Step | Vertex | Duration |\n")
	sb.WriteString("|---|---|---|\n")
	for i, v := range transition.Vertices {
		step := i
		if transition.IsParallel && i < len(transition.ParallelStarts) {
			step = transition.ParallelStarts[i]
		}
		fmt.Fprintf(&sb, "| %d | `%s` | %g |\n", step, v.ID(), v.Duration())
	}
	fmt.Fprintf(&sb, "\nTotal duration: **%g**\n", transition.Duration())

	return sb.String()
}

func joinIDs(data []domain.AnimationData) string {
	ids := make([]string, 0, len(data))
	for _, d := range data {
		ids = append(ids, d.ID)
	}
	return strings.Join(ids, ", ")
}
