package main

import (
	"fmt"

	"github.com/aretw0/montage/internal/presentation/tui"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var explainCmd = &cobra.Command{
	Use:   "explain <graph>",
	Short: "Describe how the transition of a graph is built",
	Long: `Prints a report of the graph's trace chains and the schedule of its
transition. On a terminal the report is rendered; otherwise raw Markdown is
written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, loader, err := createEngine(cmd, args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		g, err := loader.LoadGraph(ctx)
		if err != nil {
			return err
		}
		chains, err := engine.Trace(ctx, g)
		if err != nil {
			return err
		}
		v, err := engine.CreateTransition(ctx, g)
		if err != nil {
			return err
		}
		t, ok := v.(*domain.Graph)
		if !ok {
			return fmt.Errorf("transition of %q is not a graph", g.ID())
		}

		report := tui.Explain(g, chains, t)
		out := cmd.OutOrStdout()
		if colorProfile(cmd) == termenv.Ascii {
			fmt.Fprint(out, report)
			return nil
		}

		render, err := tui.NewRenderer(terminalWidth(out))
		if err != nil {
			return err
		}
		rendered, err := render(report)
		if err != nil {
			return err
		}
		tui.PrintBanner(out)
		fmt.Fprint(out, rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(explainCmd)
}
