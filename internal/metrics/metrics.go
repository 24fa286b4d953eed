// Package metrics exposes Prometheus instruments for searches and the loaded
// catalog.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vanshika/degrees/internal/catalog"
	"github.com/vanshika/degrees/internal/search"
)

// Search outcomes used as the outcome label.
const (
	OutcomeConnected    = "connected"
	OutcomeNotConnected = "not_connected"
	OutcomeError        = "error"
)

// Metrics groups the collectors registered for one process.
type Metrics struct {
	registry *prometheus.Registry

	searches       *prometheus.CounterVec
	searchDuration prometheus.Histogram
	expanded       prometheus.Histogram
	degrees        prometheus.Histogram
	catalogSize    *prometheus.GaugeVec
}

// New registers the collectors on a fresh registry, alongside the Go and
// process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_searches_total",
			Help: "Shortest-path searches by outcome",
		}, []string{"outcome"}),
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_duration_seconds",
			Help:    "Shortest-path search latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16),
		}),
		expanded: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_expanded_people",
			Help:    "People expanded per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		degrees: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_degrees",
			Help:    "Degrees of separation of connected searches",
			Buckets: prometheus.LinearBuckets(0, 1, 10),
		}),
		catalogSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "degrees_catalog_records",
			Help: "Records held by the loaded catalog",
		}, []string{"relation"}),
	}
	reg.MustRegister(m.searches, m.searchDuration, m.expanded, m.degrees, m.catalogSize)
	return m
}

// ObserveSearch records one search. degrees is ignored unless the outcome is
// OutcomeConnected.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration, stats search.Stats, degrees int) {
	m.searches.WithLabelValues(outcome).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
	m.expanded.Observe(float64(stats.Expanded))
	if outcome == OutcomeConnected {
		m.degrees.Observe(float64(degrees))
	}
}

// SetCatalog publishes the size of the loaded catalog.
func (m *Metrics) SetCatalog(stats catalog.LoadStats) {
	m.catalogSize.WithLabelValues("people").Set(float64(stats.People))
	m.catalogSize.WithLabelValues("movies").Set(float64(stats.Movies))
	m.catalogSize.WithLabelValues("cast_links").Set(float64(stats.CastLinks))
	m.catalogSize.WithLabelValues("skipped_cast_links").Set(float64(stats.SkippedCastLinks))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
