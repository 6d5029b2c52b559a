// Package metrics holds the Prometheus collectors for puzzle generation and
// play. Collectors are registered with the default registry on import.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Generation outcomes
const (
	OutcomeOK        = "ok"
	OutcomePartial   = "partial"
	OutcomeFailed    = "failed"
	OutcomeCancelled = "cancelled"
)

var (
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flashpuzzle_generations_total",
		Help: "Puzzle generations by kind and outcome",
	}, []string{"kind", "outcome"})

	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flashpuzzle_generation_duration_seconds",
		Help:    "Wall time spent generating a puzzle grid",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}, []string{"kind"})

	crosswordRestarts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flashpuzzle_crossword_restarts",
		Help:    "Full-grid restarts needed per crossword generation",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})

	wordSearchAttempts = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "flashpuzzle_wordsearch_attempts",
		Help:    "Random placement attempts per word-search generation",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	sessionsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flashpuzzle_sessions_completed_total",
		Help: "Puzzle sessions solved by kind",
	}, []string{"kind"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "flashpuzzle_http_requests_total",
		Help: "HTTP requests by method, route template and status",
	}, []string{"method", "route", "status"})

	panicsRecovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "flashpuzzle_http_panics_recovered_total",
		Help: "Handler panics caught by the recovery middleware",
	})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "flashpuzzle_http_request_duration_seconds",
		Help:    "HTTP request latency by route template",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

// ObserveGeneration records the outcome and duration of a generation
func ObserveGeneration(kind, outcome string, elapsed time.Duration) {
	generationsTotal.WithLabelValues(kind, outcome).Inc()
	generationDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

// ObserveCrosswordRestarts records how many times a crossword grid was wiped
func ObserveCrosswordRestarts(restarts int) {
	crosswordRestarts.Observe(float64(restarts))
}

// ObserveWordSearchAttempts records placement attempts for a word search
func ObserveWordSearchAttempts(attempts int) {
	wordSearchAttempts.Observe(float64(attempts))
}

// SessionCompleted counts a solved session
func SessionCompleted(kind string) {
	sessionsCompleted.WithLabelValues(kind).Inc()
}

// ObserveHTTPRequest records one served request. route is the mux template,
// not the raw path, to keep label cardinality bounded.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// PanicRecovered counts a handler panic
func PanicRecovered() {
	panicsRecovered.Inc()
}
