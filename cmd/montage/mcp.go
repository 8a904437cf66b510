package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/pkg/adapters/mcp"
	"github.com/aretw0/montage/pkg/observability"
	"github.com/aretw0/montage/pkg/ports"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp [graph]",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Serves the synthesis engine over the Model Context Protocol. Tools:
synthesize_transition, trace_graph, validate_graph and render_mermaid.

Given a graph (a file, or an id with --vault or --redis), tools may omit their
graph argument and the graph is also exposed as the montage://graph resource.

--transport stdio talks JSON-RPC on stdin/stdout for a local client; sse listens
on --port for remote clients.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		port, _ := cmd.Flags().GetInt("port")

		logger, err := createLogger(cmd)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		var loader ports.GraphLoader
		opts := []montage.Option{
			montage.WithLogger(logger),
			montage.WithSynthesisHooks(observability.LoggingHooks(logger)),
		}
		if len(args) > 0 {
			dl, err := createLoader(cmd, args[0])
			if err != nil {
				return err
			}
			loader = dl
			opts = append(opts, montage.WithLoader(loader))
		}
		srv := mcp.NewServer(montage.New(opts...), loader)

		switch transport {
		case "stdio":
			// stdout carries JSON-RPC.
			log.SetOutput(os.Stderr)
			slog.Info("mcp server listening", "transport", transport)
			return srv.ServeStdio()
		case "sse":
			slog.Info("mcp server listening", "transport", transport, "port", port)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := srv.ServeSSE(ctx, port); err != nil {
				return err
			}
			slog.Info("mcp server stopped")
			return nil
		default:
			return fmt.Errorf("unknown transport %q (want stdio or sse)", transport)
		}
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)

	mcpCmd.Flags().String("transport", "stdio", "MCP transport: stdio or sse")
	mcpCmd.Flags().Int("port", 8080, "SSE listen port")
}
