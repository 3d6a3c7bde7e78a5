// Package repository declares the persistence contracts used by the use cases.
// Implementations live under internal/infra/adapter/persistence.
package repository

import (
	"context"
	"database/sql"
	"errors"
)

var (
	// ErrDuplicate reports that an insert lost a uniqueness race. Callers re-fetch the winner.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReferenced reports that a row cannot be deleted because other rows still reference it.
	ErrReferenced = errors.New("row is still referenced")
	// ErrNoRows reports that an update or delete matched nothing.
	ErrNoRows = errors.New("no rows affected")
)

// DBTX is satisfied by both *sql.DB and *sql.Tx so repositories can run inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Repositories bundles the three stores bound to the same connection or transaction.
type Repositories struct {
	Entities EntityRepository
	Sources  SourceRepository
	Breaches BreachRepository
}

// TxManager hands out repositories and runs multi-step writes atomically.
type TxManager interface {
	// Repos returns repositories bound to the connection pool, for reads.
	Repos() Repositories
	// WithinTx runs fn with repositories bound to a single transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise; fn's error is returned unchanged.
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
