// Package tracing provides OpenTelemetry tracing integration.
//
// Middleware starts a server span per HTTP request and Start opens spans with the
// module tracer around use case operations. No exporter is wired
// by default; install a TracerProvider with otel.SetTracerProvider to ship spans.
//
// Example usage:
//
//	func processRequest(ctx context.Context) {
//	    ctx, span := tracing.Start(ctx, "breach.create")
//	    defer span.End()
//	    // ... process request ...
//	}
package tracing
