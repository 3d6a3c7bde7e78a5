package repository

import (
	"context"

	"databreach-registry/internal/domain/entity"
)

// BreachRepository persists breach facts. Get returns (nil, nil) when no row matches.
type BreachRepository interface {
	Get(ctx context.Context, id int64) (*entity.DataBreach, error)
	// List returns every breach in insertion order.
	List(ctx context.Context) ([]*entity.DataBreach, error)
	// Create validates b, inserts it and sets its ID.
	Create(ctx context.Context, b *entity.DataBreach) error
	// Update validates b and overwrites the stored row.
	Update(ctx context.Context, b *entity.DataBreach) error
	// Delete removes the breach. It returns ErrReferenced while sources still point at it.
	Delete(ctx context.Context, id int64) error
}
