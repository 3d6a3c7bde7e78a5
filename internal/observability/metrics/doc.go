// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the registry's domain metrics including:
//   - Aggregate operation outcomes and latency
//   - Entity name resolution outcomes
//   - Source URLs written
//   - Database connection pool usage
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint. HTTP request metrics live next to the
// HTTP middleware that records them.
//
// Example usage:
//
//	import "databreach-registry/internal/observability/metrics"
//
//	start := time.Now()
//	// ... create the breach ...
//	metrics.RecordBreachOperation("create", "success", time.Since(start))
package metrics
