package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "montage",
	Short: "Montage synthesizes transition animations from baked execution graphs",
	Long: `Montage reads a baked execution graph (a YAML or JSON document recording
every primitive data operation of a program chunk), traces where each final
value came from and synthesizes the animation that carries the chunk's
initial state to its final state.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored and rendered output")
	rootCmd.PersistentFlags().String("vault", "", "Read graphs by document id from this Loam vault")
	rootCmd.PersistentFlags().String("redis", "", "Read graphs by id from this Redis address (password from MONTAGE_REDIS_PASSWORD)")
}
