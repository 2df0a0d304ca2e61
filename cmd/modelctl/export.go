package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c360studio/modelgraph/graph"
	"github.com/c360studio/modelgraph/metric"
	"github.com/c360studio/modelgraph/transform"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		publishURL  string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "export <hypergraph-in> <document-out>",
		Short: "Reconstruct a catalog document from a hypergraph",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hgIn := args[0]
			docOut := args[1]

			if resolvedConfig != nil {
				if publishURL == "" {
					publishURL = resolvedConfig.NATS.URL
				}
				if metricsAddr == "" {
					metricsAddr = resolvedConfig.Metrics.Addr
				}
			}

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

			target := strings.TrimSuffix(filepath.Base(docOut), filepath.Ext(docOut))

			start := time.Now()
			out, touched := transform.Export(store, target, slog.Default())
			metric.CallDuration.WithLabelValues("export").Observe(time.Since(start).Seconds())

			if out == "" {
				metric.ExportTotal.WithLabelValues("ambiguous").Inc()
				return readFailure("export %s: no unambiguous match", target)
			}
			metric.ExportTotal.WithLabelValues("ok").Inc()

			if dir := filepath.Dir(docOut); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return writeFailure("create output dir: %w", err)
				}
			}
			if err := os.WriteFile(docOut, []byte(out), 0o644); err != nil {
				return writeFailure("write document: %w", err)
			}

			if nc != nil {
				correlationID := uuid.NewString()
				if err := graph.PublishFacts(cmd.Context(), nc, store, touched, docOut, correlationID); err != nil {
					slog.Warn("publish facts to knowledge-graph side-channel failed", "document", docOut, "error", err)
				} else {
					metric.FactsPublished.Add(float64(len(touched)))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&publishURL, "publish", "", "NATS URL to mirror exported facts onto, empty disables publishing")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, empty disables it")

	return cmd
}
