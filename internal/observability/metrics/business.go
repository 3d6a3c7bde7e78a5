package metrics

import (
	"time"
)

// Entity resolution outcomes.
const (
	ResolutionCreated  = "created"
	ResolutionReused   = "reused"
	ResolutionConflict = "conflict"
)

// RecordBreachOperation records the outcome and duration of an aggregate operation.
func RecordBreachOperation(operation, status string, duration time.Duration) {
	BreachOperationsTotal.WithLabelValues(operation, status).Inc()
	BreachOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordEntityResolution records how an entity name was resolved.
// A conflict means a concurrent writer created the name first and the row was re-read.
func RecordEntityResolution(outcome string) {
	EntityResolutionsTotal.WithLabelValues(outcome).Inc()
}

// RecordSourcesWritten adds count to the number of stored source URLs.
func RecordSourcesWritten(count int) {
	if count <= 0 {
		return
	}
	SourcesWrittenTotal.Add(float64(count))
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}
