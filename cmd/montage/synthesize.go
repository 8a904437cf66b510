package main

import (
	"fmt"
	"os"

	"github.com/aretw0/montage/pkg/adapters/fixture"
	"github.com/aretw0/montage/pkg/domain"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var synthesizeCmd = &cobra.Command{
	Use:   "synthesize <graph>",
	Short: "Synthesize the transition graph of a baked execution graph",
	Long: `Traces the graph and writes its transition graph as a document.

By default the selection stored in the document is honored. --selection
overrides it with an inline YAML/JSON selection tree; --full ignores both.
With --redis, --store also saves the transition next to the recorded graph.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		v, err := synthesize(cmd, args[0])
		if err != nil {
			return err
		}

		if store, _ := cmd.Flags().GetBool("store"); store {
			if addr, _ := cmd.Flags().GetString("redis"); addr == "" {
				return fmt.Errorf("--store requires --redis")
			}
			rs := redisStore(cmd)
			defer rs.Close()
			if err := rs.SaveTransition(cmd.Context(), args[0], v); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create output: %w", err)
			}
			defer f.Close()
			out = f
		}
		return fixture.Encode(out, v, outputFormat(cmd, output))
	},
}

func synthesize(cmd *cobra.Command, path string) (domain.Vertex, error) {
	full, _ := cmd.Flags().GetBool("full")
	rawSel, _ := cmd.Flags().GetString("selection")

	engine, loader, err := createEngine(cmd, path)
	if err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	if !full && rawSel == "" {
		return engine.Synthesize(ctx)
	}

	g, err := loader.LoadGraph(ctx)
	if err != nil {
		return nil, err
	}
	if full {
		return engine.CreateTransition(ctx, g)
	}

	var sel domain.Selection
	if err := yaml.Unmarshal([]byte(rawSel), &sel); err != nil {
		return nil, fmt.Errorf("invalid --selection: %w", err)
	}
	return engine.CreateTransitionFromSelection(ctx, g, sel)
}

func init() {
	rootCmd.AddCommand(synthesizeCmd)

	synthesizeCmd.Flags().Bool("full", false, "Synthesize the whole graph, ignoring any stored selection")
	synthesizeCmd.Flags().String("selection", "", "Inline selection tree, e.g. '{id: chunk, selection: [{id: s1}]}'")
	synthesizeCmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
	synthesizeCmd.Flags().Bool("store", false, "Save the transition to Redis (requires --redis)")
	synthesizeCmd.Flags().String("format", "", "Output format: yaml or json (default: from --output, else yaml)")
}
