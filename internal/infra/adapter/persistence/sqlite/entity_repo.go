package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

type EntityRepo struct{ db repository.DBTX }

func NewEntityRepo(db repository.DBTX) repository.EntityRepository {
	return &EntityRepo{db: db}
}

func (repo *EntityRepo) Get(ctx context.Context, id int64) (*entity.Entity, error) {
	const query = `
SELECT id, name
FROM entities
WHERE id = ?`
	var e entity.Entity
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&e.ID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &e, nil
}

func (repo *EntityRepo) GetByName(ctx context.Context, name string) (*entity.Entity, error) {
	const query = `
SELECT id, name
FROM entities
WHERE name = ?`
	var e entity.Entity
	err := repo.db.QueryRowContext(ctx, query, name).Scan(&e.ID, &e.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetByName: %w", err)
	}
	return &e, nil
}

// Create relies on ON CONFLICT DO NOTHING so a lost name race neither raises an error
// nor aborts the surrounding transaction; the caller sees ErrDuplicate and re-reads.
func (repo *EntityRepo) Create(ctx context.Context, e *entity.Entity) error {
	if err := entity.ValidateEntityName(e.Name); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	const query = `
INSERT INTO entities (name)
VALUES (?)
ON CONFLICT (name) DO NOTHING
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, e.Name).Scan(&e.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("Create: %w", mapError(err))
	}
	return nil
}

func (repo *EntityRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM entities WHERE id = ?`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: %w", repository.ErrNoRows)
	}
	return nil
}

func (repo *EntityRepo) ListTags(ctx context.Context, entityID int64) ([]string, error) {
	const query = `
SELECT organization_type
FROM organization_types
WHERE entity_id = ?
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, fmt.Errorf("ListTags: %w", err)
	}
	defer func() { _ = rows.Close() }()

	tags := make([]string, 0, 4)
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("ListTags: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func (repo *EntityRepo) AddTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	if err := entity.ValidateOrganizationType(tag); err != nil {
		return false, fmt.Errorf("AddTag: %w", err)
	}
	const query = `
INSERT INTO organization_types (organization_type, entity_id)
VALUES (?, ?)
ON CONFLICT (organization_type, entity_id) DO NOTHING`
	res, err := repo.db.ExecContext(ctx, query, tag, entityID)
	if err != nil {
		return false, fmt.Errorf("AddTag: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("AddTag: %w", err)
	}
	return n == 1, nil
}

func (repo *EntityRepo) DeleteTags(ctx context.Context, entityID int64) error {
	const query = `DELETE FROM organization_types WHERE entity_id = ?`
	if _, err := repo.db.ExecContext(ctx, query, entityID); err != nil {
		return fmt.Errorf("DeleteTags: %w", err)
	}
	return nil
}
