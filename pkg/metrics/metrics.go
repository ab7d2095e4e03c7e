// Package metrics defines the Prometheus collectors recorded during a
// wordfreq run. A CLI process lives for one run, so the collectors are kept on
// a private registry and exported once at exit to a node-exporter textfile or
// a Pushgateway.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors for a run.
type Metrics struct {
	Registry *prometheus.Registry

	RunsTotal         *prometheus.CounterVec
	StageDuration     *prometheus.HistogramVec
	FetchStatusTotal  *prometheus.CounterVec
	DocumentBytes     prometheus.Gauge
	TokensTotal       prometheus.Counter
	UniqueTokens      prometheus.Gauge
	CacheHitsTotal    prometheus.Counter
	CacheMissesTotal  prometheus.Counter
	LastRunTimestamp  prometheus.Gauge
	LastSuccessfulRun prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		RunsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordfreq_runs_total",
				Help: "Pipeline runs by outcome (success, transfer, marker_not_found, internal).",
			},
			[]string{"outcome"},
		),
		StageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "wordfreq_stage_duration_seconds",
				Help:    "Pipeline stage latency in seconds.",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"stage"},
		),
		FetchStatusTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wordfreq_fetch_responses_total",
				Help: "HTTP responses received while fetching documents, by status code.",
			},
			[]string{"code"},
		),
		DocumentBytes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_document_bytes",
				Help: "Size of the extracted document body in bytes.",
			},
		),
		TokensTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_tokens_total",
				Help: "Total tokens counted.",
			},
		),
		UniqueTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_unique_tokens",
				Help: "Distinct tokens in the last analyzed document.",
			},
		),
		CacheHitsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_document_cache_hits_total",
				Help: "Total number of document cache hits.",
			},
		),
		CacheMissesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "wordfreq_document_cache_misses_total",
				Help: "Total number of document cache misses.",
			},
		),
		LastRunTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_run_timestamp_seconds",
				Help: "Unix time the last run finished.",
			},
		),
		LastSuccessfulRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "wordfreq_last_success_timestamp_seconds",
				Help: "Unix time the last successful run finished.",
			},
		),
	}

	m.Registry.MustRegister(
		m.RunsTotal,
		m.StageDuration,
		m.FetchStatusTotal,
		m.DocumentBytes,
		m.TokensTotal,
		m.UniqueTokens,
		m.CacheHitsTotal,
		m.CacheMissesTotal,
		m.LastRunTimestamp,
		m.LastSuccessfulRun,
	)

	return m
}
