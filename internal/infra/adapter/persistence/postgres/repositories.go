// Package postgres provides PostgreSQL implementations of the repository interfaces.
package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

// SQLSTATE codes returned by PostgreSQL for constraint violations.
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
	// class 22: numeric out of range, NUL in text, string too long and friends
	dataExceptionClass = "22"
)

// NewRepositories binds the entity, source and breach repositories to q.
func NewRepositories(q repository.DBTX) repository.Repositories {
	return repository.Repositories{
		Entities: NewEntityRepo(q),
		Sources:  NewSourceRepo(q),
		Breaches: NewBreachRepo(q),
	}
}

// mapError translates constraint violations into repository sentinels. Values the
// column cannot hold become entity.ErrInvalidInput.
func mapError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		return errors.Join(repository.ErrDuplicate, err)
	case foreignKeyViolation:
		return errors.Join(repository.ErrReferenced, err)
	case checkViolation:
		return errors.Join(entity.ErrInvalidInput, err)
	}
	if strings.HasPrefix(pgErr.Code, dataExceptionClass) {
		return errors.Join(entity.ErrInvalidInput, err)
	}
	return err
}
