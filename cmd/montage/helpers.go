package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/montage"
	"github.com/aretw0/montage/internal/logging"
	"github.com/aretw0/montage/pkg/adapters/fixture"
	loamAdapter "github.com/aretw0/montage/pkg/adapters/loam"
	redisAdapter "github.com/aretw0/montage/pkg/adapters/redis"
	"github.com/aretw0/montage/pkg/observability"
	"github.com/aretw0/montage/pkg/ports"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWidth = 80

// createLogger configures the application logger from --log-level.
// It always writes to Stderr so documents on Stdout stay parseable.
func createLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// documentLoader is a graph source that may also store a selection.
type documentLoader interface {
	ports.GraphLoader
	ports.SelectionLoader
}

// createLoader resolves a graph argument: a document id in the --vault, a
// graph id in --redis, or else a file path.
func createLoader(cmd *cobra.Command, arg string) (documentLoader, error) {
	vault, _ := cmd.Flags().GetString("vault")
	addr, _ := cmd.Flags().GetString("redis")

	switch {
	case vault != "" && addr != "":
		return nil, fmt.Errorf("--vault and --redis cannot be used together")
	case vault != "":
		repo, err := loamAdapter.Open(vault, true)
		if err != nil {
			return nil, err
		}
		return loamAdapter.New(repo, arg), nil
	case addr != "":
		return redisStore(cmd).Graph(arg), nil
	default:
		return fixture.New(arg), nil
	}
}

func redisStore(cmd *cobra.Command) *redisAdapter.Store {
	addr, _ := cmd.Flags().GetString("redis")
	return redisAdapter.New(addr, os.Getenv("MONTAGE_REDIS_PASSWORD"), 0)
}

// createEngine builds an engine reading the graph named by arg.
func createEngine(cmd *cobra.Command, arg string) (*montage.Engine, documentLoader, error) {
	logger, err := createLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	loader, err := createLoader(cmd, arg)
	if err != nil {
		return nil, nil, err
	}
	engine := montage.New(
		montage.WithLoader(loader),
		montage.WithLogger(logger),
		montage.WithSynthesisHooks(observability.LoggingHooks(logger)),
	)
	return engine, loader, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorProfile disables styling for pipes, files and --no-color.
func colorProfile(cmd *cobra.Command) termenv.Profile {
	noColor, _ := cmd.Flags().GetBool("no-color")
	if noColor || !isTerminal(cmd.OutOrStdout()) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// outputFormat resolves --format, falling back to the extension of target.
func outputFormat(cmd *cobra.Command, target string) fixture.Format {
	if f, _ := cmd.Flags().GetString("format"); f != "" {
		return fixture.Format(f)
	}
	if target != "" {
		return fixture.FormatOf(target)
	}
	return fixture.FormatYAML
}
