package db

import (
	"context"
	"database/sql"
	"fmt"

	"databreach-registry/internal/repository"
)

// RepositoryFactory binds a set of repositories to a connection or transaction.
type RepositoryFactory func(q repository.DBTX) repository.Repositories

// TxManager runs repository work inside database/sql transactions.
type TxManager struct {
	db      *sql.DB
	factory RepositoryFactory
}

// NewTxManager returns a TxManager over db. factory is usually postgres.NewRepositories
// or sqlite.NewRepositories.
func NewTxManager(db *sql.DB, factory RepositoryFactory) *TxManager {
	return &TxManager{db: db, factory: factory}
}

var _ repository.TxManager = (*TxManager)(nil)

// Repos returns repositories bound to the pool.
func (m *TxManager) Repos() repository.Repositories {
	return m.factory(m.db)
}

// WithinTx begins a transaction, runs fn and commits. Any error or panic from fn rolls the
// transaction back; panics are re-raised after rollback.
func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context, repos repository.Repositories) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(ctx, m.factory(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
