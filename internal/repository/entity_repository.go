package repository

import (
	"context"

	"databreach-registry/internal/domain/entity"
)

// EntityRepository persists breached entities and their organization type tags.
//
// Get and GetByName return (nil, nil) when no row matches.
type EntityRepository interface {
	Get(ctx context.Context, id int64) (*entity.Entity, error)
	GetByName(ctx context.Context, name string) (*entity.Entity, error)
	// Create inserts e and sets its ID. It returns ErrDuplicate, without failing the
	// surrounding transaction, when another row already holds the same name.
	Create(ctx context.Context, e *entity.Entity) error
	// Delete removes the entity. It returns ErrReferenced while any breach or tag still points at it.
	Delete(ctx context.Context, id int64) error

	// ListTags returns the entity's organization types in insertion order.
	ListTags(ctx context.Context, entityID int64) ([]string, error)
	// AddTag inserts the (tag, entityID) pair. An existing pair is a no-op and reports false.
	AddTag(ctx context.Context, entityID int64, tag string) (bool, error)
	// DeleteTags removes every tag of the entity.
	DeleteTags(ctx context.Context, entityID int64) error
}
