// Package auth authenticates modifying requests with API keys or admin JWTs and issues
// tokens to the configured operator.
package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"databreach-registry/internal/handler/http/requestid"
	"databreach-registry/internal/handler/http/respond"
)

const (
	apiKeyHeader  = "X-API-Key"
	apiKeyScheme  = "Api-Key "
	bearerScheme  = "Bearer "
	wwwAuthHeader = "WWW-Authenticate"
)

// Authenticator gates modifying requests behind an API key or an admin JWT.
type Authenticator struct {
	Keys   *KeySet
	Tokens *TokenIssuer
	Logger *slog.Logger
}

// RequireWrite lets GET, HEAD and OPTIONS through and authenticates everything else.
// No credential or a bad one yields 401; a valid token without the admin role yields 403.
func (a *Authenticator) RequireWrite(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IsSafeMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		p, err := a.authenticate(r)
		RecordAuthzCheckDuration(time.Since(start).Seconds())

		if err != nil {
			RecordAuthRequest(kindOf(r), "failure")
			a.logger().Warn("authentication failed",
				slog.String("request_id", requestid.FromContext(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("reason", err.Error()))
			w.Header().Set(wwwAuthHeader, `Api-Key, Bearer realm="databreaches"`)
			respond.JSON(w, http.StatusUnauthorized, map[string]string{"error": publicMessage(err)})
			return
		}

		if p.Role != RoleAdmin {
			RecordForbiddenAttempt(p.Role, r.Method)
			respond.JSON(w, http.StatusForbidden, map[string]string{
				"error": "you do not have permission to perform this action",
			})
			return
		}

		RecordAuthRequest(p.Kind, "success")
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), p)))
	})
}

func (a *Authenticator) authenticate(r *http.Request) (Principal, error) {
	if key := r.Header.Get(apiKeyHeader); key != "" {
		return a.checkKey(key)
	}

	authz := r.Header.Get("Authorization")
	switch {
	case authz == "":
		return Principal{}, ErrMissingCredentials
	case hasScheme(authz, apiKeyScheme):
		return a.checkKey(strings.TrimSpace(authz[len(apiKeyScheme):]))
	case hasScheme(authz, bearerScheme):
		claims, err := a.Tokens.Parse(strings.TrimSpace(authz[len(bearerScheme):]))
		if err != nil {
			return Principal{}, err
		}
		return Principal{Subject: claims.Subject, Role: claims.Role, Kind: KindJWT}, nil
	default:
		return Principal{}, ErrMissingCredentials
	}
}

func (a *Authenticator) checkKey(key string) (Principal, error) {
	if !a.Keys.Contains(key) {
		return Principal{}, ErrInvalidAPIKey
	}
	return Principal{Subject: "api-key", Role: RoleAdmin, Kind: KindAPIKey}, nil
}

func (a *Authenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func hasScheme(header, scheme string) bool {
	return len(header) >= len(scheme) && strings.EqualFold(header[:len(scheme)], scheme)
}

func kindOf(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	switch {
	case r.Header.Get(apiKeyHeader) != "", hasScheme(authz, apiKeyScheme):
		return KindAPIKey
	case hasScheme(authz, bearerScheme):
		return KindJWT
	}
	return "none"
}

func publicMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAPIKey):
		return ErrInvalidAPIKey.Error()
	case errors.Is(err, ErrInvalidToken):
		return ErrInvalidToken.Error()
	}
	return ErrMissingCredentials.Error()
}
