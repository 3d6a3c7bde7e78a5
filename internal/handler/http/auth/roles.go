package auth

import (
	"context"
	"net/http"
)

// RoleAdmin is the only role allowed to modify data.
const RoleAdmin = "admin"

// Credential kinds recorded on a Principal and in metrics.
const (
	KindAPIKey = "api_key"
	KindJWT    = "jwt"
)

// Principal identifies the caller of an authenticated request.
type Principal struct {
	Subject string
	Role    string
	Kind    string
}

type ctxKey string

const ctxPrincipal ctxKey = "principal"

// WithPrincipal stores p in ctx.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxPrincipal, p)
}

// PrincipalFromContext returns the caller stored by the middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxPrincipal).(Principal)
	return p, ok
}

// IsSafeMethod reports whether method only reads; such requests bypass authentication.
func IsSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
