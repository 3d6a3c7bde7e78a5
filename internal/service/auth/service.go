// Package auth validates operator credentials independently of the transport.
package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrInvalidCredentials is returned for any username/password mismatch.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// AuthProvider checks credentials against some user store.
type AuthProvider interface {
	// ValidateCredentials returns ErrInvalidCredentials (possibly wrapped) on mismatch.
	ValidateCredentials(ctx context.Context, creds Credentials) error

	// IdentifyUser returns the role granted to username.
	IdentifyUser(ctx context.Context, username string) (string, error)

	// Name returns the name of this provider.
	Name() string
}

// AuthService handles authentication business logic.
type AuthService struct {
	provider AuthProvider
}

// NewAuthService creates a new authentication service.
func NewAuthService(provider AuthProvider) *AuthService {
	return &AuthService{provider: provider}
}

// Authenticate validates creds and returns the role to embed in an issued token.
func (s *AuthService) Authenticate(ctx context.Context, creds Credentials) (string, error) {
	if creds.Username == "" || creds.Password == "" {
		return "", fmt.Errorf("authenticate: %w", ErrInvalidCredentials)
	}
	if err := s.provider.ValidateCredentials(ctx, creds); err != nil {
		return "", fmt.Errorf("authenticate: %w", err)
	}
	role, err := s.provider.IdentifyUser(ctx, creds.Username)
	if err != nil {
		return "", fmt.Errorf("identify user: %w", err)
	}
	return role, nil
}

// ProviderName reports which provider backs the service.
func (s *AuthService) ProviderName() string {
	return s.provider.Name()
}
