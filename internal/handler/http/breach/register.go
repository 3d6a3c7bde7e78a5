// Package breach serves the /databreaches/ resource.
package breach

import (
	"context"
	"net/http"

	breachUC "databreach-registry/internal/usecase/breach"
)

// Service is the slice of the breach use cases the handlers call.
type Service interface {
	List(ctx context.Context) ([]breachUC.Document, error)
	Get(ctx context.Context, id int64) (*breachUC.Document, error)
	Create(ctx context.Context, req breachUC.Request) (*breachUC.Document, error)
	Update(ctx context.Context, id int64, req breachUC.Request) (*breachUC.Document, error)
	Delete(ctx context.Context, id int64) error
}

// Register mounts the breach routes on mux. Both /databreaches/ and /databreaches are
// accepted, with or without the trailing slash after an id. protect wraps the
// modifying routes (authentication, rate limiting); nil leaves them open.
func Register(mux *http.ServeMux, svc Service, protect func(http.Handler) http.Handler) {
	if protect == nil {
		protect = func(h http.Handler) http.Handler { return h }
	}

	handle := func(pattern string, h http.Handler) {
		mux.Handle(pattern, h)
		mux.Handle(pattern+"/{$}", h)
	}

	handle("GET    /databreaches", ListHandler{Svc: svc})
	handle("POST   /databreaches", protect(CreateHandler{Svc: svc}))
	handle("GET    /databreaches/{id}", GetHandler{Svc: svc})
	handle("PUT    /databreaches/{id}", protect(UpdateHandler{Svc: svc}))
	handle("DELETE /databreaches/{id}", protect(DeleteHandler{Svc: svc}))
}
