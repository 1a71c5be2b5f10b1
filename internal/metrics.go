package internal

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	adapterMetadata = "metadata"
	adapterTitles   = "titles"

	outcomeSuccess = "success"
)

// Metrics records adapter outcomes. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry   *prometheus.Registry
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	variations prometheus.Histogram
}

// NewMetrics creates the collectors on a private registry
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "ytapp",
			Name:      "adapter_requests_total",
			Help:      "Adapter calls by adapter and outcome kind.",
		}, []string{"adapter", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ytapp",
			Name:      "adapter_request_duration_seconds",
			Help:      "Adapter call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"adapter"}),
		variations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "ytapp",
			Name:      "title_variations_returned",
			Help:      "Usable title variations per successful generation.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6, 8},
		}),
	}
	m.registry.MustRegister(m.requests, m.latency, m.variations)
	return m
}

// ObserveRequest counts one adapter call and its latency
func (m *Metrics) ObserveRequest(adapter string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeSuccess
	if err != nil {
		outcome = KindOf(err).String()
	}
	m.requests.WithLabelValues(adapter, outcome).Inc()
	m.latency.WithLabelValues(adapter).Observe(elapsed.Seconds())
}

// ObserveVariations records how many variations survived filtering
func (m *Metrics) ObserveVariations(n int) {
	if m == nil {
		return
	}
	m.variations.Observe(float64(n))
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
