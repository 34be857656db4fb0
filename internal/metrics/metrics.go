package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for Rollcall
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    prometheus.CounterVec
	HTTPRequestDuration  prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  prometheus.CounterVec
	DBQueryDuration prometheus.HistogramVec

	// Business Metrics
	CheckInsTotal           prometheus.CounterVec
	ParticipantTogglesTotal prometheus.CounterVec
	EventsDeactivatedTotal  prometheus.Counter
	RolloverSweepDuration   prometheus.Histogram
}

// NewMetricsRegistry initializes and returns a new MetricsRegistry with all metrics
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		HTTPRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rollcall_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: *promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rollcall_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "rollcall_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CheckInsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_checkins_total",
				Help: "Legacy check-in toggles by station and action",
			},
			[]string{"station_id", "action"},
		),
		ParticipantTogglesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rollcall_participant_toggles_total",
				Help: "Event roster toggles by station and action",
			},
			[]string{"station_id", "action"},
		),
		EventsDeactivatedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "rollcall_events_deactivated_total",
				Help: "Events ended by the rollover sweep",
			},
		),
		RolloverSweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rollcall_rollover_sweep_duration_seconds",
				Help:    "Rollover sweep execution time in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
		),
	}
}
