package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TMDB
	TMDBRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmdb_request_duration_seconds",
			Help:    "Duración de requests a TMDB",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"}, // endpoint: search|details, status: ok|error
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Estado del circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	// Enriquecimiento
	EnrichResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_results_total",
			Help: "Resultados de enriquecimiento por tipo",
		},
		[]string{"outcome"}, // ok|placeholder
	)

	EnrichCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrich_cache_hits_total",
			Help: "Hits del memo de enriquecimiento por nivel",
		},
		[]string{"tier"}, // memory|redis
	)

	// Recomendaciones
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Requests de recomendación por resultado",
		},
		[]string{"outcome"}, // ok|not_found|integrity|error
	)
)

func RecordTMDBRequest(endpoint string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	TMDBRequestDuration.WithLabelValues(endpoint, status).Observe(d.Seconds())
}

func RecordEnrich(placeholder bool) {
	if placeholder {
		EnrichResults.WithLabelValues("placeholder").Inc()
		return
	}
	EnrichResults.WithLabelValues("ok").Inc()
}
