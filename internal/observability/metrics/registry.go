// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Aggregate operation metrics track the create/update/delete/get/list use cases.
var (
	// BreachOperationsTotal counts aggregate operations by outcome
	BreachOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "breach_operations_total",
			Help: "Total number of data breach aggregate operations",
		},
		[]string{"operation", "status"}, // status: success|invalid|not_found|error
	)

	// BreachOperationDuration measures aggregate operation duration in seconds
	BreachOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "breach_operation_duration_seconds",
			Help:    "Data breach aggregate operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"operation"},
	)
)

// Business metrics track registry-specific events
var (
	// EntityResolutionsTotal counts how entity names were resolved
	EntityResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entity_resolutions_total",
			Help: "Total number of entity name resolutions",
		},
		[]string{"outcome"}, // outcome: created|reused|conflict
	)

	// SourcesWrittenTotal counts source URLs stored
	SourcesWrittenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "breach_sources_written_total",
			Help: "Total number of media source URLs written",
		},
	)
)

// Database metrics track the connection pool
var (
	// DBConnectionsActive tracks in-use database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)
