// Package metric exposes Prometheus counters and histograms for
// Import/Export calls, served over HTTP when `modelctl import` or
// `modelctl export` is given a metrics address.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ImportTotal counts Import calls by outcome ("ok" or "failed").
	ImportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelctl_import_total",
		Help: "Total number of Import calls, by outcome.",
	}, []string{"outcome"})

	// ExportTotal counts Export calls by outcome ("ok" or "ambiguous").
	ExportTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "modelctl_export_total",
		Help: "Total number of Export calls, by outcome.",
	}, []string{"outcome"})

	// CallDuration records how long Import/Export calls take, by
	// operation ("import" or "export").
	CallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "modelctl_call_duration_seconds",
		Help:    "Duration of Import/Export calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	// FactsPublished counts facts flattened and published to the
	// optional NATS side-channel.
	FactsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "modelctl_facts_published_total",
		Help: "Total number of facts published to the knowledge-graph side-channel.",
	})
)

// Serve starts a blocking HTTP server exposing /metrics on addr. The
// caller runs it in its own goroutine; `import` and `export` start it
// whenever a metrics address is set, with or without --watch.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
