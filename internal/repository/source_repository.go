package repository

import (
	"context"

	"databreach-registry/internal/domain/entity"
)

// SourceRepository persists the media-source URLs attached to a breach.
type SourceRepository interface {
	// CreateAll inserts one row per URL, in order, referencing breachID.
	CreateAll(ctx context.Context, breachID int64, urls []string) ([]*entity.Source, error)
	// ListByBreach returns the breach's sources in insertion order.
	ListByBreach(ctx context.Context, breachID int64) ([]*entity.Source, error)
	// DeleteAll removes every source of the breach and reports how many rows went away.
	DeleteAll(ctx context.Context, breachID int64) (int64, error)
}
