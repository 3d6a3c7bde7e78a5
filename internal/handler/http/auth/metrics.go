package auth

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// authRequestsTotal counts write-request authentications by credential kind and result.
	authRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_requests_total",
			Help: "Write request authentications by credential kind and result",
		},
		[]string{"kind", "result"},
	)

	authzCheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "authz_check_duration_seconds",
			Help:    "Authorization check duration",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01},
		},
	)

	forbiddenAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forbidden_attempts_total",
			Help: "Forbidden access attempts by role and method",
		},
		[]string{"role", "method"},
	)

	tokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_tokens_issued_total",
			Help: "Token endpoint outcomes",
		},
		[]string{"result"},
	)

	tokenDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auth_token_duration_seconds",
			Help:    "Token endpoint latency",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
)

// RecordAuthRequest records an authentication attempt on a write request.
func RecordAuthRequest(kind, result string) {
	authRequestsTotal.WithLabelValues(kind, result).Inc()
}

// RecordAuthzCheckDuration records authorization check duration.
func RecordAuthzCheckDuration(durationSeconds float64) {
	authzCheckDuration.Observe(durationSeconds)
}

// RecordForbiddenAttempt records an authenticated caller lacking the admin role.
func RecordForbiddenAttempt(role, method string) {
	forbiddenAttempts.WithLabelValues(role, method).Inc()
}

// RecordTokenIssued records one token endpoint outcome.
func RecordTokenIssued(result string, d time.Duration) {
	tokensIssuedTotal.WithLabelValues(result).Inc()
	tokenDuration.Observe(d.Seconds())
}
