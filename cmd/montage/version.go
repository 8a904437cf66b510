package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/montage"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of montage",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "montage version %s\n", strings.TrimSpace(montage.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
