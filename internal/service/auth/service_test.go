package auth

import (
	"context"
	"errors"
	"testing"
)

type mockAuthProvider struct {
	validateErr error
	role        string
	identifyErr error
	validated   int
}

func (m *mockAuthProvider) ValidateCredentials(ctx context.Context, creds Credentials) error {
	m.validated++
	return m.validateErr
}

func (m *mockAuthProvider) IdentifyUser(ctx context.Context, username string) (string, error) {
	return m.role, m.identifyErr
}

func (m *mockAuthProvider) Name() string { return "mock" }

func TestAuthService_Authenticate(t *testing.T) {
	identifyFailure := errors.New("user not found")

	tests := []struct {
		name          string
		creds         Credentials
		provider      *mockAuthProvider
		wantRole      string
		wantErr       error
		wantValidated int
	}{
		{
			name:          "valid admin",
			creds:         Credentials{Username: "admin", Password: "pw"},
			provider:      &mockAuthProvider{role: "admin"},
			wantRole:      "admin",
			wantValidated: 1,
		},
		{
			name:     "empty username short-circuits",
			creds:    Credentials{Password: "pw"},
			provider: &mockAuthProvider{role: "admin"},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "empty password short-circuits",
			creds:    Credentials{Username: "admin"},
			provider: &mockAuthProvider{role: "admin"},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:          "provider rejects",
			creds:         Credentials{Username: "admin", Password: "wrong"},
			provider:      &mockAuthProvider{validateErr: ErrInvalidCredentials},
			wantErr:       ErrInvalidCredentials,
			wantValidated: 1,
		},
		{
			name:          "identify fails",
			creds:         Credentials{Username: "admin", Password: "pw"},
			provider:      &mockAuthProvider{identifyErr: identifyFailure},
			wantErr:       identifyFailure,
			wantValidated: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.provider)

			role, err := svc.Authenticate(context.Background(), tt.creds)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if role != tt.wantRole {
				t.Errorf("role = %q, want %q", role, tt.wantRole)
			}
			if tt.provider.validated != tt.wantValidated {
				t.Errorf("provider called %d times, want %d", tt.provider.validated, tt.wantValidated)
			}
		})
	}
}

func TestAuthService_ProviderName(t *testing.T) {
	if got := NewAuthService(&mockAuthProvider{}).ProviderName(); got != "mock" {
		t.Errorf("ProviderName() = %q", got)
	}
}
