package tui

import (
	"fmt"
	"io"

	"github.com/aretw0/montage/pkg/domain"
	"github.com/muesli/termenv"
)

// Tree writes an indented, colored outline of a vertex and its children.
func Tree(w io.Writer, v domain.Vertex, p termenv.Profile) {
	writeTree(w, v, p, "", true, true)
}

func writeTree(w io.Writer, v domain.Vertex, p termenv.Profile, prefix string, last, root bool) {
	branch, next := "├── ", "│   "
	if last {
		branch, next = "└── ", "    "
	}
	if root {
		branch, next = "", ""
	}

	fmt.Fprintf(w, "%s%s%s\n", prefix, branch, describe(v, p))

	g, ok := v.(*domain.Graph)
	if !ok {
		return
	}
	for i, child := range g.Vertices {
		writeTree(w, child, p, prefix+next, i == len(g.Vertices)-1, false)
	}
}

func describe(v domain.Vertex, p termenv.Profile) string {
	dim := func(s string) termenv.Style { return p.String(s).Foreground(p.Color("#6b7280")) }

	switch n := v.(type) {
	case *domain.Graph:
		mode := "sequential"
		if n.IsParallel {
			mode = fmt.Sprintf("parallel %v", n.ParallelStarts)
		}
		return fmt.Sprintf("%s %s", p.String(n.ID()).Bold().Foreground(p.Color("#818cf8")),
			dim(fmt.Sprintf("(%s, %g)", mode, n.Duration())))
	case domain.TransitionNode:
		origins := make([]string, 0, len(n.Origins()))
		for _, o := range n.Origins() {
			origins = append(origins, o.ID)
		}
		return fmt.Sprintf("%s %s", p.String(n.ID()).Foreground(p.Color("#34d399")),
			dim(fmt.Sprintf("← %v, %g", origins, n.Duration())))
	case domain.Traced:
		return fmt.Sprintf("%s %s", p.String(v.ID()).Foreground(p.Color("#f472b6")),
			dim(fmt.Sprintf("[%s] %g", n.TraceOperator(), v.Duration())))
	default:
		return fmt.Sprintf("%s %s", v.ID(), dim(fmt.Sprintf("%g", v.Duration())))
	}
}

// ChainTree writes each trace chain as an outline, root value first. Edges are
// labelled with the operator that produced the parent value.
func ChainTree(w io.Writer, chains []*domain.TraceChain, p termenv.Profile) {
	for _, c := range chains {
		fmt.Fprintln(w, p.String(chainLabel(c)).Bold())
		writeChain(w, c, p, "")
	}
}

func writeChain(w io.Writer, c *domain.TraceChain, p termenv.Profile, prefix string) {
	for i, e := range c.Children {
		branch, next := "├── ", "│   "
		if i == len(c.Children)-1 {
			branch, next = "└── ", "    "
		}
		op := p.String(e.Operator.String()).Foreground(p.Color("#f472b6"))
		fmt.Fprintf(w, "%s%s%s %s\n", prefix, branch, op, chainLabel(e.Chain))
		writeChain(w, e.Chain, p, prefix+next)
	}
}

func chainLabel(c *domain.TraceChain) string {
	if c.Value == nil {
		return "∅"
	}
	return c.Value.ID
}
