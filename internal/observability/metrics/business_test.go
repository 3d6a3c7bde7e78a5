package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordBreachOperation(t *testing.T) {
	before := testutil.ToFloat64(BreachOperationsTotal.WithLabelValues("create", "success"))

	RecordBreachOperation("create", "success", 15*time.Millisecond)
	RecordBreachOperation("create", "success", 20*time.Millisecond)

	after := testutil.ToFloat64(BreachOperationsTotal.WithLabelValues("create", "success"))
	assert.Equal(t, before+2, after)
}

func TestRecordEntityResolution(t *testing.T) {
	tests := []string{ResolutionCreated, ResolutionReused, ResolutionConflict}

	for _, outcome := range tests {
		t.Run(outcome, func(t *testing.T) {
			before := testutil.ToFloat64(EntityResolutionsTotal.WithLabelValues(outcome))
			RecordEntityResolution(outcome)
			assert.Equal(t, before+1, testutil.ToFloat64(EntityResolutionsTotal.WithLabelValues(outcome)))
		})
	}
}

func TestRecordSourcesWritten(t *testing.T) {
	tests := []struct {
		name  string
		count int
		delta float64
	}{
		{name: "several", count: 3, delta: 3},
		{name: "zero", count: 0, delta: 0},
		{name: "negative ignored", count: -2, delta: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SourcesWrittenTotal)
			RecordSourcesWritten(tt.count)
			assert.Equal(t, before+tt.delta, testutil.ToFloat64(SourcesWrittenTotal))
		})
	}
}

func TestUpdateDBConnectionStats(t *testing.T) {
	UpdateDBConnectionStats(4, 6)

	assert.Equal(t, 4.0, testutil.ToFloat64(DBConnectionsActive))
	assert.Equal(t, 6.0, testutil.ToFloat64(DBConnectionsIdle))
}
