package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkpass_sessions_created_total",
		Help: "Total parking sessions opened by customer scans",
	})

	SessionsValidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkpass_sessions_validated_total",
		Help: "Total parking sessions validated by businesses",
	})

	SessionsCompletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "parkpass_sessions_completed_total",
		Help: "Total parking sessions marked complete",
	})

	ScansResolvedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "parkpass_scans_resolved_total",
		Help: "Scan resolutions by actor role and outcome",
	}, []string{"role", "outcome"})

	ActiveSessionWatches = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "parkpass_active_session_watches",
		Help: "Currently subscribed one-shot session status watches",
	})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "parkpass_database_latency_seconds",
		Help:    "Latency of store round-trips",
		Buckets: prometheus.DefBuckets,
	})
)
