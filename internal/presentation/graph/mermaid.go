package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aretw0/montage/pkg/domain"
)

// GraphOverlay contains extra state to visualize on the graph.
type GraphOverlay struct {
	// Selected vertices are highlighted, e.g. the ids a selection names.
	Selected []string
}

// GenerateMermaid produces a Mermaid flowchart of a graph. Nested graphs become
// subgraphs. It applies semantic styling:
// - Initialize: ((Circle))
// - Synthesized primitive: [[Subroutine]]
// - Traced recorded node: [/Parallelogram/]
// - Default: [Rectangle]
// Sequential graphs chain their vertices; parallel graphs fan out from one
// scheduling step to the next.
func GenerateMermaid(g *domain.Graph, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	writeGraph(&sb, g, "    ")

	// Apply Overlay Styles
	if overlay != nil && len(overlay.Selected) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Selected {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s selected;\n", safeID)
			}
		}
	}

	return sb.String()
}

func writeGraph(sb *strings.Builder, g *domain.Graph, indent string) {
	for _, v := range g.Vertices {
		safeID := sanitizeMermaidID(v.ID())

		if v.Kind() == domain.KindGraph {
			child := v.(*domain.Graph)
			title := child.ID()
			if child.IsParallel {
				title += " ∥"
			}
			fmt.Fprintf(sb, "%ssubgraph %s[\"%s\"]\n", indent, safeID, escape(title))
			writeGraph(sb, child, indent+"    ")
			fmt.Fprintf(sb, "%send\n", indent)
			continue
		}

		opener, closer := "[", "]"
		switch v.(type) {
		case domain.TransitionNode:
			opener, closer = "[[", "]]" // Subroutine
		case domain.Traced:
			opener, closer = "[/", "/]" // Parallelogram
		}
		if op, ok := v.(interface{ Operation() string }); ok && op.Operation() == "Initialize" {
			opener, closer = "((", "))" // Circle
		}

		fmt.Fprintf(sb, "%s%s%s\"%s <br/> %g\"%s\n", indent, safeID, opener, escape(v.ID()), v.Duration(), closer)
	}

	for _, e := range edges(g) {
		fmt.Fprintf(sb, "%s%s --> %s\n", indent, sanitizeMermaidID(e[0]), sanitizeMermaidID(e[1]))
	}
}

// edges returns the scheduling order of a graph's direct children.
func edges(g *domain.Graph) [][2]string {
	var out [][2]string
	if !g.IsParallel {
		for i := 1; i < len(g.Vertices); i++ {
			out = append(out, [2]string{g.Vertices[i-1].ID(), g.Vertices[i].ID()})
		}
		return out
	}

	steps := make(map[int][]string)
	for i, v := range g.Vertices {
		step := 0
		if i < len(g.ParallelStarts) {
			step = g.ParallelStarts[i]
		}
		steps[step] = append(steps[step], v.ID())
	}
	order := make([]int, 0, len(steps))
	for s := range steps {
		order = append(order, s)
	}
	slices.Sort(order)

	for i := 1; i < len(order); i++ {
		for _, from := range steps[order[i-1]] {
			for _, to := range steps[order[i]] {
				out = append(out, [2]string{from, to})
			}
		}
	}
	return out
}

// GenerateTraceMermaid produces a left-to-right data-flow chart of trace chains:
// every value points at the value it produced, labelled with the operator.
func GenerateTraceMermaid(chains []*domain.TraceChain) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	n := 0
	var walk func(c *domain.TraceChain) string
	walk = func(c *domain.TraceChain) string {
		id := fmt.Sprintf("v%d", n)
		n++

		label := "∅"
		if c.Value != nil {
			label = c.Value.ID
			if len(c.Value.Location) > 0 {
				label += " <br/> " + c.Value.Location.String()
			}
		}
		shape := "(\"%s\")"
		if c.IsLeaf() {
			shape = "[(\"%s\")]" // Cylinder: comes from outside the graph
		}
		fmt.Fprintf(&sb, "    %s"+shape+"\n", id, escape(label))

		for _, e := range c.Children {
			from := walk(e.Chain)
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", from, e.Operator, id)
		}
		return id
	}

	for _, c := range chains {
		walk(c)
	}
	return sb.String()
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, id)
}
