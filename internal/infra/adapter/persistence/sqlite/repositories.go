// Package sqlite provides SQLite implementations of the repository interfaces.
// The connection must have foreign key enforcement switched on (see db.SQLiteDSN).
package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

// NewRepositories binds the entity, source and breach repositories to q.
func NewRepositories(q repository.DBTX) repository.Repositories {
	return repository.Repositories{
		Entities: NewEntityRepo(q),
		Sources:  NewSourceRepo(q),
		Breaches: NewBreachRepo(q),
	}
}

// mapError translates constraint violations into repository sentinels.
func mapError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) || sqliteErr.Code != sqlite3.ErrConstraint {
		return err
	}
	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
		return errors.Join(repository.ErrDuplicate, err)
	case sqlite3.ErrConstraintForeignKey:
		return errors.Join(repository.ErrReferenced, err)
	case sqlite3.ErrConstraintCheck:
		return errors.Join(entity.ErrInvalidInput, err)
	}
	return err
}
