package main

import (
	"fmt"

	"github.com/aretw0/montage/internal/validator"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <graph>",
	Short: "Check the graph for consistency",
	Long: `Reports structural problems (missing or duplicate ids, inconsistent
parallel schedules), nodes that were never baked and selections naming
vertices the graph does not have.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, loader, err := createEngine(cmd, args[0])
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		g, err := loader.LoadGraph(ctx)
		if err != nil {
			return err
		}
		sel, err := loader.LoadSelection(ctx)
		if err != nil {
			return err
		}

		issues := validator.Issues(validator.ValidateGraph(g))
		if sel != nil {
			issues = append(issues, validator.Issues(validator.ValidateSelection(g, *sel))...)
		}
		if len(issues) > 0 {
			for _, issue := range issues {
				fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", issue)
			}
			return fmt.Errorf("validation failed: %d issue(s)", len(issues))
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Graph is valid! ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
