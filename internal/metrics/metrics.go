// Package metrics exposes Prometheus collectors for the discovery service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics bundles the pipeline's collectors on a private registry so tests
// can construct isolated instances.
type Metrics struct {
	registry *prometheus.Registry

	urlsDiscovered    prometheus.Counter
	urlsExcluded      prometheus.Counter
	rankedByTier      *prometheus.CounterVec
	batchesDispatched prometheus.Counter
	dispatchFailures  prometheus.Counter
	sentinelFailures  prometheus.Counter
	runDuration       prometheus.Histogram
}

// New builds a Metrics instance with all collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		urlsDiscovered: factory.NewCounter(prometheus.CounterOpts{
			Name: "discovery_urls_total",
			Help: "Total number of candidate URLs discovered across runs.",
		}),
		urlsExcluded: factory.NewCounter(prometheus.CounterOpts{
			Name: "discovery_urls_excluded_total",
			Help: "Total number of URLs dropped by exclusion rules.",
		}),
		rankedByTier: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "discovery_ranked_urls_total",
			Help: "Total number of ranked URLs, labeled by tier.",
		}, []string{"tier"}),
		batchesDispatched: factory.NewCounter(prometheus.CounterOpts{
			Name: "discovery_batches_dispatched_total",
			Help: "Total number of batches successfully sent to the queue.",
		}),
		dispatchFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "discovery_dispatch_failures_total",
			Help: "Total number of batch sends that failed.",
		}),
		sentinelFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "discovery_sentinel_failures_total",
			Help: "Total number of sentinel emissions that failed.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "discovery_run_duration_seconds",
			Help:    "Histogram of end-to-end discovery run durations.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// ObserveDiscovered records the candidate set size of one run.
func (m *Metrics) ObserveDiscovered(count int) {
	m.urlsDiscovered.Add(float64(count))
}

// ObserveExcluded records how many URLs the rule table dropped.
func (m *Metrics) ObserveExcluded(count int) {
	m.urlsExcluded.Add(float64(count))
}

// ObserveRanked records per-tier ranked counts.
func (m *Metrics) ObserveRanked(tier string, count int) {
	m.rankedByTier.WithLabelValues(tier).Add(float64(count))
}

// ObserveDispatch records send outcomes.
func (m *Metrics) ObserveDispatch(success, failure int) {
	m.batchesDispatched.Add(float64(success))
	m.dispatchFailures.Add(float64(failure))
}

// ObserveSentinelFailure counts one failed sentinel emission.
func (m *Metrics) ObserveSentinelFailure() {
	m.sentinelFailures.Inc()
}

// ObserveRunDuration records the total wall time of a run.
func (m *Metrics) ObserveRunDuration(d time.Duration) {
	m.runDuration.Observe(d.Seconds())
}

// Handler serves the registry for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
