package tracing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// recordSpans installs an in-memory provider for the duration of the test.
func recordSpans(t *testing.T) (*tracetest.InMemoryExporter, *sdktrace.TracerProvider) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	tracer = otel.Tracer(InstrumentationName)
	t.Cleanup(func() {
		otel.SetTracerProvider(sdktrace.NewTracerProvider())
		tracer = otel.Tracer(InstrumentationName)
	})
	return exporter, tp
}

func serve(t *testing.T, tp *sdktrace.TracerProvider, status int, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	handler := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	_ = tp.ForceFlush(context.Background())
	return rr
}

func attrValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, a := range attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestMiddleware_CreatesSpan(t *testing.T) {
	exporter, tp := recordSpans(t)

	serve(t, tp, http.StatusOK, httptest.NewRequest(http.MethodGet, "/databreaches/42/", nil))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	span := spans[0]
	if span.Name != "GET /databreaches/:id" {
		t.Errorf("expected span name 'GET /databreaches/:id', got %q", span.Name)
	}

	if v, ok := attrValue(span.Attributes, "http.method"); !ok || v.AsString() != "GET" {
		t.Errorf("http.method = %v, want GET", v.AsString())
	}
	if v, ok := attrValue(span.Attributes, "http.route"); !ok || v.AsString() != "/databreaches/:id" {
		t.Errorf("http.route = %v, want /databreaches/:id", v.AsString())
	}
	if v, ok := attrValue(span.Attributes, "http.path"); !ok || v.AsString() != "/databreaches/42/" {
		t.Errorf("http.path = %v, want /databreaches/42/", v.AsString())
	}
	if v, ok := attrValue(span.Attributes, "http.status_code"); !ok || v.AsInt64() != 200 {
		t.Errorf("http.status_code = %d, want 200", v.AsInt64())
	}
}

func TestMiddleware_AddsTraceIDToResponse(t *testing.T) {
	_, tp := recordSpans(t)

	rr := serve(t, tp, http.StatusOK, httptest.NewRequest(http.MethodGet, "/databreaches/", nil))

	traceID := rr.Header().Get(TraceIDHeader)
	if len(traceID) != 32 {
		t.Errorf("expected 32 hex character trace ID, got %q", traceID)
	}
}

func TestMiddleware_PropagatesTraceContext(t *testing.T) {
	exporter, tp := recordSpans(t)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	defer otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator())

	req := httptest.NewRequest(http.MethodGet, "/databreaches/", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	rr := serve(t, tp, http.StatusOK, req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	const want = "4bf92f3577b34da6a3ce929d0e0e4736"
	if got := spans[0].SpanContext.TraceID().String(); got != want {
		t.Errorf("expected trace ID %s, got %s", want, got)
	}
	if got := rr.Header().Get(TraceIDHeader); got != want {
		t.Errorf("expected response trace ID %s, got %s", want, got)
	}
}

func TestMiddleware_ErrorStatus(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantError bool
	}{
		{"server error", http.StatusInternalServerError, true},
		{"unavailable", http.StatusServiceUnavailable, true},
		{"not found", http.StatusNotFound, false},
		{"validation", http.StatusBadRequest, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter, tp := recordSpans(t)

			serve(t, tp, tt.status, httptest.NewRequest(http.MethodPost, "/databreaches/", nil))

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("expected 1 span, got %d", len(spans))
			}
			_, hasError := attrValue(spans[0].Attributes, "error")
			if hasError != tt.wantError {
				t.Errorf("error attribute present = %v, want %v", hasError, tt.wantError)
			}
			if tt.wantError && spans[0].Status.Code != codes.Error {
				t.Errorf("expected span status Error, got %v", spans[0].Status.Code)
			}
		})
	}
}
