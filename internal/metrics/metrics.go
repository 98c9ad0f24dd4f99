package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and route
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "route"},
	)

	// RequestDuration measures HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wordle_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "route"},
	)

	// RequestInProgress counts HTTP requests currently being processed
	RequestInProgress = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "wordle_http_requests_in_progress",
			Help: "Number of HTTP requests currently being processed",
		},
		[]string{"method"},
	)

	// RateLimiterRejections counts requests rejected by the auth rate limiter
	RateLimiterRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_rate_limiter_rejections_total",
			Help: "Total number of requests rejected by rate limiter",
		},
	)

	// GamesStarted counts sessions created
	GamesStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_games_started_total",
			Help: "Total number of game sessions started",
		},
	)

	// GamesFinished counts sessions reaching a terminal status
	GamesFinished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_games_finished_total",
			Help: "Total number of game sessions finished, by outcome",
		},
		[]string{"status"},
	)

	// GuessesSubmitted counts accepted guesses
	GuessesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_guesses_total",
			Help: "Total number of scored guesses",
		},
	)

	// GuessesRejected counts guesses refused before scoring, by reason
	GuessesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_guesses_rejected_total",
			Help: "Total number of guesses rejected before scoring",
		},
		[]string{"reason"},
	)

	// HintsIssued counts hints by level
	HintsIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_hints_issued_total",
			Help: "Total number of hints issued, by level",
		},
		[]string{"level"},
	)

	// LockWaitDuration measures time spent waiting for the per-user game lock
	LockWaitDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wordle_user_lock_wait_seconds",
			Help:    "Time spent waiting for the per-user game lock",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	// LockTimeouts counts requests that gave up waiting for the per-user lock
	LockTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wordle_user_lock_timeouts_total",
			Help: "Total number of requests that timed out waiting for the per-user lock",
		},
	)

	// CacheHits counts report cache hits
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_report_cache_hits_total",
			Help: "Total number of report cache hits",
		},
		[]string{"report"},
	)

	// CacheMisses counts report cache misses
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wordle_report_cache_misses_total",
			Help: "Total number of report cache misses",
		},
		[]string{"report"},
	)
)
