package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

// ErrOpen is returned instead of running a transaction while the circuit is open.
var ErrOpen = gobreaker.ErrOpenState

// TxConfig returns configuration for the transaction runner.
// Opens after 5 consecutive infrastructure failures, 30 second timeout.
func TxConfig() Config {
	return Config{
		Name:             "database",
		MaxRequests:      3,
		Interval:         time.Minute,
		Timeout:          30 * time.Second,
		FailureThreshold: 1.0,
		MinRequests:      5,
		IsSuccessful:     IsInfrastructureHealthy,
	}
}

// IsInfrastructureHealthy reports whether err leaves the database looking healthy.
// Validation failures, rejected values, not-found outcomes and caller cancellations are the caller's doing,
// not the database's.
func IsInfrastructureHealthy(err error) bool {
	switch {
	case err == nil,
		errors.Is(err, entity.ErrValidationFailed),
		errors.Is(err, entity.ErrInvalidInput),
		errors.Is(err, entity.ErrNotFound),
		errors.Is(err, context.Canceled):
		return true
	}
	return false
}

// TxManager guards a repository.TxManager with a circuit breaker. Only WithinTx is
// guarded; reads through Repos go straight to the pool.
type TxManager struct {
	cb    *CircuitBreaker
	inner repository.TxManager
}

var _ repository.TxManager = (*TxManager)(nil)

// NewTxManager wraps inner with a breaker built from cfg.
func NewTxManager(inner repository.TxManager, cfg Config) *TxManager {
	return &TxManager{cb: New(cfg), inner: inner}
}

// Repos returns the inner manager's pool-bound repositories.
func (m *TxManager) Repos() repository.Repositories {
	return m.inner.Repos()
}

// WithinTx runs the transaction through the breaker. The inner error is returned unchanged.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	return m.cb.Execute(func() error {
		return m.inner.WithinTx(ctx, fn)
	})
}

// State returns the current state of the circuit breaker.
func (m *TxManager) State() gobreaker.State {
	return m.cb.State()
}

// IsOpen returns true if the circuit breaker is in the open state.
func (m *TxManager) IsOpen() bool {
	return m.cb.IsOpen()
}
