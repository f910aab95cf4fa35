// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DecksGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_decks_generated_total",
			Help: "Total number of pitch deck generations by outcome",
		},
		[]string{"endpoint", "strategy", "status"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pitch_generation_duration_seconds",
			Help: "Duration of deck generation in seconds",
		},
		[]string{"endpoint", "strategy"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitch_provider_calls_total",
			Help: "Total number of outbound provider calls by outcome",
		},
		[]string{"provider", "status"},
	)

	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pitch_provider_call_duration_seconds",
			Help: "Duration of outbound provider calls in seconds",
		},
		[]string{"provider"},
	)

	RequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pitch_requests_in_flight",
			Help: "Number of generation requests currently being served",
		},
		[]string{"endpoint"},
	)
)
