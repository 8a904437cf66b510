package main

import (
	"fmt"

	"github.com/aretw0/montage/pkg/adapters/fixture"
	loamAdapter "github.com/aretw0/montage/pkg/adapters/loam"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish <graph-file>",
	Short: "Store a recorded graph in a Loam vault or in Redis",
	Long: `Reads a graph document from a file and stores it, with its selection, under
its graph id: as <id>.md in the --vault, or as a Redis document with --redis.
Other commands then read it with the same flag and the id as argument.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		vault, _ := cmd.Flags().GetString("vault")
		addr, _ := cmd.Flags().GetString("redis")
		notes, _ := cmd.Flags().GetString("notes")

		loader := fixture.New(args[0])
		ctx := cmd.Context()
		g, err := loader.LoadGraph(ctx)
		if err != nil {
			return err
		}
		sel, err := loader.LoadSelection(ctx)
		if err != nil {
			return err
		}

		switch {
		case vault != "" && addr != "":
			return fmt.Errorf("--vault and --redis cannot be used together")
		case vault != "":
			repo, err := loamAdapter.Open(vault, false)
			if err != nil {
				return err
			}
			if err := loamAdapter.Publish(ctx, repo, g, sel, notes); err != nil {
				return err
			}
		case addr != "":
			rs := redisStore(cmd)
			defer rs.Close()
			if err := rs.SaveGraph(ctx, g, sel); err != nil {
				return err
			}
		default:
			return fmt.Errorf("publish needs --vault or --redis")
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Published %s\n", g.ID())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(publishCmd)
	publishCmd.Flags().String("notes", "", "Markdown body stored with the graph (vault only)")
}
