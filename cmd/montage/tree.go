package main

import (
	"github.com/aretw0/montage/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <graph>",
	Short: "Print the graph, or its transition, as an outline",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transition, _ := cmd.Flags().GetBool("transition")

		engine, loader, err := createEngine(cmd, args[0])
		if err != nil {
			return err
		}

		if transition {
			v, err := engine.Synthesize(cmd.Context())
			if err != nil {
				return err
			}
			tui.Tree(cmd.OutOrStdout(), v, colorProfile(cmd))
			return nil
		}

		g, err := loader.LoadGraph(cmd.Context())
		if err != nil {
			return err
		}
		tui.Tree(cmd.OutOrStdout(), g, colorProfile(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeCmd.Flags().Bool("transition", false, "Outline the synthesized transition")
}
