// Package metrics defines the Prometheus collectors for the search engine
// and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for SearchQueriesTotal.
const (
	ResultHit        = "hit"
	ResultZeroResult = "zero_result"
	ResultError      = "error"
)

// Metrics holds the collectors, registered on a private registry.
type Metrics struct {
	registry           *prometheus.Registry
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	DocumentsIndexed   prometheus.Gauge
	VocabularySize     prometheus.Gauge
	LookupsTotal       *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		SearchQueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "irsearch_search_queries_total",
				Help: "Total search queries by result type (hit, zero_result, error).",
			},
			[]string{"result"},
		),
		SearchLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "irsearch_search_latency_seconds",
				Help:    "Search query latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
			},
		),
		DocumentsIndexed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "irsearch_documents_indexed",
				Help: "Number of documents in the index.",
			},
		),
		VocabularySize: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "irsearch_vocabulary_size",
				Help: "Number of distinct terms in the index.",
			},
		),
		LookupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "irsearch_lookups_total",
				Help: "Document view lookups by outcome (exact, fuzzy, not_found).",
			},
			[]string{"outcome"},
		),
	}
	m.registry.MustRegister(
		m.SearchQueriesTotal,
		m.SearchLatency,
		m.DocumentsIndexed,
		m.VocabularySize,
		m.LookupsTotal,
	)
	return m
}

// Handler returns the scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
