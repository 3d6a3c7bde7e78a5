package config

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ConfigMetrics tracks fail-open loading for one component. Create it once per component;
// the collectors are registered with the default registry.
type ConfigMetrics struct {
	LoadTimestamp  prometheus.Gauge
	FallbacksTotal *prometheus.CounterVec
	FallbackActive prometheus.Gauge
}

// NewConfigMetrics registers {component}_config_load_timestamp,
// {component}_config_fallbacks_total{field} and {component}_config_fallback_active.
func NewConfigMetrics(component string) *ConfigMetrics {
	return newConfigMetrics(component, promauto.With(prometheus.DefaultRegisterer))
}

func newConfigMetrics(component string, f promauto.Factory) *ConfigMetrics {
	return &ConfigMetrics{
		LoadTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_load_timestamp", component),
			Help: fmt.Sprintf("Unix timestamp of last %s configuration load", component),
		}),
		FallbacksTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: fmt.Sprintf("%s_config_fallbacks_total", component),
			Help: fmt.Sprintf("Total number of %s configuration fallback operations", component),
		}, []string{"field"}),
		FallbackActive: f.NewGauge(prometheus.GaugeOpts{
			Name: fmt.Sprintf("%s_config_fallback_active", component),
			Help: fmt.Sprintf("1 if any %s configuration fallback is active, 0 otherwise", component),
		}),
	}
}

// Observe records one load pass. fallbacks lists the fields that fell back to defaults.
func (m *ConfigMetrics) Observe(fallbacks []string) {
	m.LoadTimestamp.SetToCurrentTime()
	for _, field := range fallbacks {
		m.FallbacksTotal.WithLabelValues(field).Inc()
	}
	if len(fallbacks) > 0 {
		m.FallbackActive.Set(1)
	} else {
		m.FallbackActive.Set(0)
	}
}
