package main

import (
	"fmt"

	"github.com/aretw0/montage/internal/presentation/graph"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <graph>",
	Short: "Export a Mermaid diagram of the graph",
	Long: `Outputs a Mermaid diagram of the execution graph, with the vertices of any
stored selection highlighted. --transition draws the synthesized transition
instead and --trace draws the trace chains.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transition, _ := cmd.Flags().GetBool("transition")
		trace, _ := cmd.Flags().GetBool("trace")
		if transition && trace {
			return fmt.Errorf("--transition and --trace cannot be used together")
		}

		engine, loader, err := createEngine(cmd, args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		g, err := loader.LoadGraph(ctx)
		if err != nil {
			return err
		}

		var output string
		switch {
		case trace:
			chains, err := engine.Trace(ctx, g)
			if err != nil {
				return err
			}
			output = graph.GenerateTraceMermaid(chains)
		case transition:
			v, err := engine.Synthesize(ctx)
			if err != nil {
				return err
			}
			t, ok := v.(*domain.Graph)
			if !ok {
				return fmt.Errorf("transition of %q is not a graph", g.ID())
			}
			output = graph.GenerateMermaid(t, nil)
		default:
			sel, err := loader.LoadSelection(ctx)
			if err != nil {
				return err
			}
			output = graph.GenerateMermaid(g, overlay(sel))
		}

		fmt.Fprint(cmd.OutOrStdout(), output)
		return nil
	},
}

// overlay highlights every vertex named by a selection, at any depth.
func overlay(sel *domain.Selection) *graph.GraphOverlay {
	if sel == nil {
		return nil
	}
	o := &graph.GraphOverlay{}
	var walk func(items []domain.Selection)
	walk = func(items []domain.Selection) {
		for _, item := range items {
			o.Selected = append(o.Selected, item.ID)
			walk(item.Selection)
		}
	}
	walk(sel.Selection)
	return o
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("transition", false, "Draw the synthesized transition")
	graphCmd.Flags().Bool("trace", false, "Draw the trace chains")
}
