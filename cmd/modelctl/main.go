// Package main provides the modelctl binary entry point.
// Modelctl transforms component/interface catalog documents into an
// additive hypergraph knowledge base and back, and optionally mirrors
// imported facts onto a live NATS knowledge-graph subject.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/c360studio/modelgraph/config"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "modelctl"
)

// resolvedConfig holds the layered default/user/project configuration
// loaded once at startup. import and export consult it for flag
// defaults that were not given explicitly on the command line.
var resolvedConfig *config.Config

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		code := 1
		var ee *exitError
		if errors.As(err, &ee) {
			code = ee.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(code)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Catalog document <-> hypergraph transformation tool",
		Long: `modelctl transforms component/interface catalog documents into an
additive hypergraph knowledge base and back.

It provides:
- import: load a catalog document into a hypergraph
- export: reconstruct a catalog document from a hypergraph

Both directions are additive and idempotent; re-running import with the
same document never deletes prior facts.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			configureLogging(logLevel)
			cfg, err := config.NewLoader(slog.Default()).Load()
			if err != nil {
				return readFailure("load configuration: %w", err)
			}
			resolvedConfig = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	cmd.AddCommand(importCmd(), exportCmd(), versionCmd())
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func configureLogging(logLevel string) {
	level := slog.LevelInfo
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}
