// Package metrics exposes Prometheus collectors for the generator.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resolvesTotal          *prometheus.CounterVec
	resolveDurationSeconds prometheus.Histogram
	pagesGeneratedTotal    prometheus.Counter
	deploysTotal           *prometheus.CounterVec
	httpRequestsTotal      *prometheus.CounterVec

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		resolvesTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkforge_resolves_total",
				Help: "Total number of metadata resolve attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		resolveDurationSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "linkforge_resolve_duration_seconds",
				Help:    "Duration of metadata resolve calls.",
				Buckets: prometheus.DefBuckets,
			},
		)

		pagesGeneratedTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "linkforge_pages_generated_total",
				Help: "Total number of redirect pages written to disk.",
			},
		)

		deploysTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkforge_deploys_total",
				Help: "Total number of deploy attempts, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		httpRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linkforge_http_requests_total",
				Help: "Total number of preview server requests, labeled by method and code.",
			},
			[]string{"method", "code"},
		)
	})
}

// ObserveResolve records one resolve attempt.
func ObserveResolve(outcome string, d time.Duration) {
	if resolvesTotal == nil {
		return
	}
	resolvesTotal.WithLabelValues(outcome).Inc()
	resolveDurationSeconds.Observe(d.Seconds())
}

// PageGenerated records one written page.
func PageGenerated() {
	if pagesGeneratedTotal == nil {
		return
	}
	pagesGeneratedTotal.Inc()
}

// ObserveDeploy records one deploy attempt.
func ObserveDeploy(outcome string) {
	if deploysTotal == nil {
		return
	}
	deploysTotal.WithLabelValues(outcome).Inc()
}

// ObserveHTTPRequest records one preview server request.
func ObserveHTTPRequest(method string, code string) {
	if httpRequestsTotal == nil {
		return
	}
	httpRequestsTotal.WithLabelValues(method, code).Inc()
}
