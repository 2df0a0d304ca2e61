package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/c360studio/modelgraph/catalog"
	"github.com/c360studio/modelgraph/graph"
	"github.com/c360studio/modelgraph/hypergraph"
	"github.com/c360studio/modelgraph/metric"
	"github.com/c360studio/modelgraph/transform"
	"github.com/c360studio/semstreams/natsclient"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	var (
		glob        string
		watch       bool
		publishURL  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "import <document-in> <hypergraph-out> [<hypergraph-in>]",
		Short: "Import a catalog document into a hypergraph",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			docIn := args[0]
			hgOut := args[1]
			hgIn := ""
			if len(args) == 3 {
				hgIn = args[2]
			}

			applyConfigDefaults(&glob, &publishURL, &metricsAddr, docIn)

			if metricsAddr != "" {
				go func() {
					if err := metric.Serve(metricsAddr); err != nil {
						slog.Error("metrics server stopped", "error", err)
					}
				}()
			}

			nc, err := connectPublisher(cmd.Context(), publishURL)
			if err != nil {
				return readFailure("connect publisher: %w", err)
			}
			if nc != nil {
				defer nc.Close(cmd.Context())
			}

			store, err := loadStore(hgIn)
			if err != nil {
				return readFailure("load hypergraph: %w", err)
			}

			if err := runImportOnce(cmd.Context(), store, docIn, hgOut, glob, nc); err != nil {
				return err
			}

			if watch {
				return watchAndImport(cmd.Context(), store, docIn, hgOut, glob, nc)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "", "glob pattern selecting documents under document-in (treats document-in as a directory)")
	cmd.Flags().BoolVar(&watch, "watch", false, "keep running and re-import on document changes")
	cmd.Flags().StringVar(&publishURL, "publish", "", "NATS URL to mirror imported facts onto, empty disables publishing")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, empty disables it")

	return cmd
}

// applyConfigDefaults fills unset --publish and --metrics-addr flags
// from the layered config file, and --glob only when docIn resolves
// to a directory, so a bare `import doc.yaml out.json` invocation
// never gets silently reinterpreted as a directory glob because a
// project's modelctl.yaml happens to set catalog.glob.
func applyConfigDefaults(glob, publishURL, metricsAddr *string, docIn string) {
	if resolvedConfig == nil {
		return
	}
	if *publishURL == "" {
		*publishURL = resolvedConfig.NATS.URL
	}
	if *metricsAddr == "" {
		*metricsAddr = resolvedConfig.Metrics.Addr
	}
	if *glob == "" && resolvedConfig.Catalog.Glob != "" {
		if fi, err := os.Stat(docIn); err == nil && fi.IsDir() {
			*glob = resolvedConfig.Catalog.Glob
		}
	}
}

func connectPublisher(ctx context.Context, url string) (*natsclient.Client, error) {
	if url == "" {
		return nil, nil
	}
	nc, err := natsclient.NewClient(url, natsclient.WithName("modelctl"))
	if err != nil {
		return nil, err
	}
	if err := nc.Connect(ctx); err != nil {
		return nil, err
	}
	return nc, nil
}

func runImportOnce(ctx context.Context, store *hypergraph.Store, docIn, hgOut, glob string, nc *natsclient.Client) error {
	paths, err := collectDocPaths(docIn, glob)
	if err != nil {
		return readFailure("resolve document paths: %w", err)
	}

	for _, path := range paths {
		if err := importPath(ctx, store, path, nc); err != nil {
			return err
		}
	}

	if err := saveStore(store, hgOut); err != nil {
		metric.ImportTotal.WithLabelValues("failed").Inc()
		return writeFailure("write hypergraph: %w", err)
	}
	return nil
}

func importPath(ctx context.Context, store *hypergraph.Store, path string, nc *natsclient.Client) error {
	start := time.Now()
	defer func() { metric.CallDuration.WithLabelValues("import").Observe(time.Since(start).Seconds()) }()

	data, err := os.ReadFile(path)
	if err != nil {
		metric.ImportTotal.WithLabelValues("failed").Inc()
		return readFailure("read document %s: %w", path, err)
	}

	doc, err := catalog.Parse(data)
	if err != nil {
		metric.ImportTotal.WithLabelValues("failed").Inc()
		return readFailure("parse document %s: %w", path, err)
	}

	logger := slog.Default().With("document", path)
	ok, touched := transform.Import(store, doc, logger)
	if !ok {
		metric.ImportTotal.WithLabelValues("failed").Inc()
		return readFailure("import document %s: invalid document", path)
	}
	metric.ImportTotal.WithLabelValues("ok").Inc()

	if nc != nil {
		correlationID := uuid.NewString()
		if err := graph.PublishFacts(ctx, nc, store, touched, path, correlationID); err != nil {
			slog.Warn("publish facts to knowledge-graph side-channel failed", "document", path, "error", err)
		} else {
			metric.FactsPublished.Add(float64(len(touched)))
		}
	}
	return nil
}
