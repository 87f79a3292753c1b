// Package telemetry registers the application's Prometheus metrics against
// the default registry, exposed on GET /metrics.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics are labelled by the Gin route template (c.FullPath()), not
// the raw URL, so note and key IDs don't blow up label cardinality.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed, by method, route template, and status code.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request latencies, by method and route template.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)
)

// CardsSentTotal counts physical card orders accepted by the fulfillment
// provider.
var CardsSentTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "cards_sent_total",
		Help: "Total number of handwritten cards submitted for fulfillment.",
	},
)

// DeepAnalysisRunsTotal counts completed deep style analyses, by outcome
// ("parsed" when the model's JSON was usable, "fallback" otherwise).
var DeepAnalysisRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "deep_analysis_runs_total",
		Help: "Total number of deep style analysis runs, by outcome.",
	},
	[]string{"outcome"},
)

// NotesApprovedTotal counts note approvals, split by whether the human
// edited the draft. The ratio is the product's core quality signal.
var NotesApprovedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notes_approved_total",
		Help: "Total number of approved notes, by whether the draft was edited.",
	},
	[]string{"edited"},
)
