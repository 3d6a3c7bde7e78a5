package sqlite

import (
	"context"
	"fmt"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

type SourceRepo struct{ db repository.DBTX }

func NewSourceRepo(db repository.DBTX) repository.SourceRepository {
	return &SourceRepo{db: db}
}

func (repo *SourceRepo) CreateAll(ctx context.Context, breachID int64, urls []string) ([]*entity.Source, error) {
	const query = `
INSERT INTO sources (url, data_breach_id)
VALUES (?, ?)
RETURNING id`
	created := make([]*entity.Source, 0, len(urls))
	for _, u := range urls {
		if err := entity.ValidateURL(u); err != nil {
			return nil, fmt.Errorf("CreateAll: %w", err)
		}
		src := &entity.Source{URL: u, DataBreachID: breachID}
		if err := repo.db.QueryRowContext(ctx, query, u, breachID).Scan(&src.ID); err != nil {
			return nil, fmt.Errorf("CreateAll: %w", mapError(err))
		}
		created = append(created, src)
	}
	return created, nil
}

func (repo *SourceRepo) ListByBreach(ctx context.Context, breachID int64) ([]*entity.Source, error) {
	const query = `
SELECT id, url, data_breach_id
FROM sources
WHERE data_breach_id = ?
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query, breachID)
	if err != nil {
		return nil, fmt.Errorf("ListByBreach: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sources := make([]*entity.Source, 0, 4)
	for rows.Next() {
		var s entity.Source
		if err := rows.Scan(&s.ID, &s.URL, &s.DataBreachID); err != nil {
			return nil, fmt.Errorf("ListByBreach: %w", err)
		}
		sources = append(sources, &s)
	}
	return sources, rows.Err()
}

func (repo *SourceRepo) DeleteAll(ctx context.Context, breachID int64) (int64, error) {
	const query = `DELETE FROM sources WHERE data_breach_id = ?`
	res, err := repo.db.ExecContext(ctx, query, breachID)
	if err != nil {
		return 0, fmt.Errorf("DeleteAll: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("DeleteAll: %w", err)
	}
	return n, nil
}
