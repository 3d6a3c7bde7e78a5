package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

type BreachRepo struct{ db repository.DBTX }

func NewBreachRepo(db repository.DBTX) repository.BreachRepository {
	return &BreachRepo{db: db}
}

func (repo *BreachRepo) Get(ctx context.Context, id int64) (*entity.DataBreach, error) {
	const query = `
SELECT id, entity_id, year, records, method
FROM data_breaches
WHERE id = ?`
	var b entity.DataBreach
	err := repo.db.QueryRowContext(ctx, query, id).Scan(&b.ID, &b.EntityID, &b.Year, &b.Records, &b.Method)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &b, nil
}

func (repo *BreachRepo) List(ctx context.Context) ([]*entity.DataBreach, error) {
	const query = `
SELECT id, entity_id, year, records, method
FROM data_breaches
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	breaches := make([]*entity.DataBreach, 0, 50)
	for rows.Next() {
		var b entity.DataBreach
		if err := rows.Scan(&b.ID, &b.EntityID, &b.Year, &b.Records, &b.Method); err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		breaches = append(breaches, &b)
	}
	return breaches, rows.Err()
}

func (repo *BreachRepo) Create(ctx context.Context, b *entity.DataBreach) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	const query = `
INSERT INTO data_breaches (entity_id, year, records, method)
VALUES (?, ?, ?, ?)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, query, b.EntityID, b.Year, b.Records, b.Method).Scan(&b.ID)
	if err != nil {
		return fmt.Errorf("Create: %w", mapError(err))
	}
	return nil
}

func (repo *BreachRepo) Update(ctx context.Context, b *entity.DataBreach) error {
	if err := b.Validate(); err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	const query = `
UPDATE data_breaches SET
       entity_id = ?,
       year      = ?,
       records   = ?,
       method    = ?
WHERE  id        = ?`
	res, err := repo.db.ExecContext(ctx, query, b.EntityID, b.Year, b.Records, b.Method, b.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", mapError(err))
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Update: %w", repository.ErrNoRows)
	}
	return nil
}

func (repo *BreachRepo) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM data_breaches WHERE id = ?`
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
