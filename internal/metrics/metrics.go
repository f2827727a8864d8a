// Package metrics exposes Prometheus instrumentation for the recommendation
// flow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Classifications counts mood classifications by resulting label.
	Classifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skylark_classifications_total",
			Help: "Total number of weather-to-mood classifications by mood",
		},
		[]string{"mood"},
	)

	// Recommendations counts completed ranking passes.
	Recommendations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skylark_recommendations_total",
			Help: "Total number of completed candidate rankings",
		},
	)

	// SyncFailures counts recommendations whose playlist sync was unavailable.
	SyncFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skylark_playlist_sync_failures_total",
			Help: "Total number of recommendations where playlist sync failed",
		},
	)

	// ProviderRetries counts credential-refresh retries against external APIs.
	ProviderRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "skylark_credential_refresh_retries_total",
			Help: "Total number of retries performed after a credential refresh",
		},
	)
)
