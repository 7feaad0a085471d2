package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Authentication metrics
	LoginAttempts     *prometheus.CounterVec // Login attempts by status (success/failure)
	RegistrationTotal prometheus.Counter     // Accounts created

	// Sync metrics
	SyncPushes       *prometheus.CounterVec   // Pushes by status (success/failure)
	SyncRecords      *prometheus.CounterVec   // Upserted records by kind and outcome (inserted/updated)
	SyncBatchSize    prometheus.Histogram     // Records per push
	SyncPushDuration *prometheus.HistogramVec // Push transaction latency by status
	SyncPulls        *prometheus.CounterVec   // Pulls by status

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // Request latency in seconds
	ActiveConnections   prometheus.Gauge         // In-flight requests

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint
	InvalidTokens prometheus.Counter     // Invalid or expired bearer tokens
	CORSRejects   prometheus.Counter     // Unlisted origins seen

	// System metrics
	DatabaseConnections prometheus.Gauge // Open connections in the pool
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Total number of login attempts by status (success, failure)",
			},
			[]string{"status"},
		),

		RegistrationTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of user registrations",
			},
		),

		SyncPushes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_pushes_total",
				Help: "Total number of sync pushes by status",
			},
			[]string{"status"},
		),

		SyncRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_records_total",
				Help: "Total number of synchronized records by kind and outcome (inserted, updated)",
			},
			[]string{"kind", "outcome"},
		),

		SyncBatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "sync_batch_records",
				Help:    "Number of records submitted per push",
				Buckets: []float64{0, 10, 50, 100, 500, 1000, 2500, 5000},
			},
		),

		SyncPushDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "sync_push_duration_seconds",
				Help:    "Duration of the push transaction in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"status"},
		),

		SyncPulls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sync_pulls_total",
				Help: "Total number of sync pulls by status",
			},
			[]string{"status"},
		),

		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of in-flight HTTP requests",
			},
		),

		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		InvalidTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_invalid_tokens_total",
				Help: "Total number of invalid or expired JWT token attempts",
			},
		),

		CORSRejects: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_cors_unlisted_origins_total",
				Help: "Total number of requests from origins missing from the allow list",
			},
		),

		DatabaseConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Current number of open database connections",
			},
		),
	}
}

// RecordLoginAttempt records a login attempt with the given status.
func (m *Metrics) RecordLoginAttempt(status string) {
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// RecordRegistration increments the registration counter.
func (m *Metrics) RecordRegistration() {
	m.RegistrationTotal.Inc()
}

// RecordSyncPush records a finished push.
func (m *Metrics) RecordSyncPush(status string, records int, duration time.Duration) {
	m.SyncPushes.WithLabelValues(status).Inc()
	m.SyncBatchSize.Observe(float64(records))
	m.SyncPushDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// RecordSyncRecord counts one committed upsert.
func (m *Metrics) RecordSyncRecord(kind, outcome string) {
	m.SyncRecords.WithLabelValues(kind, outcome).Inc()
}

// RecordSyncPull records a pull.
func (m *Metrics) RecordSyncPull(status string) {
	m.SyncPulls.WithLabelValues(status).Inc()
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, statusCodeToString(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordInvalidToken increments the invalid token counter.
func (m *Metrics) RecordInvalidToken() {
	m.InvalidTokens.Inc()
}

// RecordUnlistedOrigin increments the unlisted CORS origin counter.
func (m *Metrics) RecordUnlistedOrigin() {
	m.CORSRejects.Inc()
}

// UpdateDatabaseConnections updates the database connections gauge.
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// statusCodeToString keeps label cardinality bounded / Limite la cardinalité des labels
func statusCodeToString(code int) string {
	switch code {
	case 200, 201, 400, 401, 403, 404, 413, 429, 500, 503:
		return strconv.Itoa(code)
	}
	switch {
	case code >= 200 && code < 300:
		return "2xx"
	case code >= 300 && code < 400:
		return "3xx"
	case code >= 400 && code < 500:
		return "4xx"
	case code >= 500 && code < 600:
		return "5xx"
	}
	return "unknown"
}
