// Package observability groups the logging, metrics and tracing used by both binaries.
//
//   - logging: slog setup from LOG_LEVEL/LOG_FORMAT and a request-scoped logger in the context
//   - metrics: breach operation, entity resolution and connection pool collectors
//   - tracing: the module tracer and the HTTP span middleware
//
// HTTP request metrics live next to the handlers in internal/handler/http.
package observability
