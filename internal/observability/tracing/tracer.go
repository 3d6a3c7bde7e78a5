package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName identifies spans created by this module.
const InstrumentationName = "databreach-registry"

// tracer resolves through the global provider, so one installed after start-up still
// receives the spans.
var tracer = otel.Tracer(InstrumentationName)

// Start opens a span named name carrying attrs. The caller ends it.
//
//	ctx, span := tracing.Start(ctx, "breach.create", attribute.Int64("breach.id", id))
//	defer span.End()
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}
