package main

import (
	"encoding/json"

	"github.com/aretw0/montage/internal/dto"
	"github.com/aretw0/montage/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var traceCmd = &cobra.Command{
	Use:   "trace <graph>",
	Short: "Print the trace chain of every final value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		engine, loader, err := createEngine(cmd, args[0])
		if err != nil {
			return err
		}
		g, err := loader.LoadGraph(cmd.Context())
		if err != nil {
			return err
		}
		chains, err := engine.Trace(cmd.Context(), g)
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.FromChains(chains))
		}
		tui.ChainTree(cmd.OutOrStdout(), chains, colorProfile(cmd))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	traceCmd.Flags().Bool("json", false, "Print chains as JSON")
}
