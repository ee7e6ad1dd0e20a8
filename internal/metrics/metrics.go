// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics holds the Prometheus collectors for provider calls and
// the HTTP entry point.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "scholar_federator"

// Provider call outcomes used as the status label.
const (
	StatusOK      = "ok"
	StatusError   = "error"
	StatusTimeout = "timeout"
)

var (
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "Total provider calls by outcome",
		},
		[]string{"provider", "status"},
	)

	ProviderRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Provider call duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider"},
	)

	ProviderResultsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_results_total",
			Help:      "Normalized records returned by providers before dedup",
		},
		[]string{"provider"},
	)

	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "searches_total",
			Help:      "Federated searches by degraded state",
		},
		[]string{"degraded"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call
// more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			ProviderRequestsTotal,
			ProviderRequestDuration,
			ProviderResultsTotal,
			SearchesTotal,
			httpRequestDuration,
			httpRequestsTotal,
			httpRequestsInFlight,
		)
	})
}

// ObserveProvider records one provider call.
func ObserveProvider(provider, status string, elapsed time.Duration, results int) {
	ProviderRequestsTotal.WithLabelValues(provider, status).Inc()
	ProviderRequestDuration.WithLabelValues(provider).Observe(elapsed.Seconds())
	if results > 0 {
		ProviderResultsTotal.WithLabelValues(provider).Add(float64(results))
	}
}

// ObserveSearch records one completed federated search.
func ObserveSearch(degraded bool) {
	label := "false"
	if degraded {
		label = "true"
	}
	SearchesTotal.WithLabelValues(label).Inc()
}
