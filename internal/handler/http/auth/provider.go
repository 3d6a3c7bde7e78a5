package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	authservice "databreach-registry/internal/service/auth"
)

// BasicAuthProvider authenticates the single operator configured through
// ADMIN_USER and ADMIN_USER_PASSWORD.
type BasicAuthProvider struct {
	user     string
	password string
}

// NewBasicAuthProvider creates a provider for one admin account.
func NewBasicAuthProvider(user, password string) *BasicAuthProvider {
	return &BasicAuthProvider{user: user, password: password}
}

// ValidateCredentials compares both fields in constant time.
func (p *BasicAuthProvider) ValidateCredentials(ctx context.Context, creds authservice.Credentials) error {
	if p.user == "" {
		return fmt.Errorf("no operator configured: %w", authservice.ErrInvalidCredentials)
	}
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(p.user))
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(p.password))
	if userMatch&passMatch != 1 {
		return authservice.ErrInvalidCredentials
	}
	return nil
}

// IdentifyUser grants the admin role to the configured operator only.
func (p *BasicAuthProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	if p.user != "" && subtle.ConstantTimeCompare([]byte(username), []byte(p.user)) == 1 {
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("user not found")
}

// Name returns the provider name.
func (p *BasicAuthProvider) Name() string {
	return "basic"
}
