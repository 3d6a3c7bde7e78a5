package breach

import (
	"context"
	"errors"
	"fmt"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/observability/metrics"
	"databreach-registry/internal/repository"
)

// resolveOrCreate returns the entity named name, creating it with tags when absent.
// Existing entities keep their tags. The bool reports whether a row was created.
func resolveOrCreate(ctx context.Context, repo repository.EntityRepository, name string, tags []string) (*entity.Entity, bool, error) {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return nil, false, fmt.Errorf("resolve entity: %w", err)
	}
	if existing != nil {
		metrics.RecordEntityResolution(metrics.ResolutionReused)
		return existing, false, nil
	}

	e := &entity.Entity{Name: name}
	err = repo.Create(ctx, e)
	if errors.Is(err, repository.ErrDuplicate) {
		// A concurrent writer committed the same name between lookup and insert.
		winner, err := repo.GetByName(ctx, name)
		if err != nil {
			return nil, false, fmt.Errorf("resolve entity after conflict: %w", err)
		}
		if winner == nil {
			return nil, false, fmt.Errorf("resolve entity %q: conflicting row not visible", name)
		}
		metrics.RecordEntityResolution(metrics.ResolutionConflict)
		return winner, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("create entity: %w", err)
	}

	for _, tag := range tags {
		if _, err := repo.AddTag(ctx, e.ID, tag); err != nil {
			return nil, false, fmt.Errorf("add organization type: %w", err)
		}
	}
	metrics.RecordEntityResolution(metrics.ResolutionCreated)
	return e, true, nil
}

// replaceTags makes tags the entity's complete tag set.
func replaceTags(ctx context.Context, repo repository.EntityRepository, entityID int64, tags []string) error {
	if err := repo.DeleteTags(ctx, entityID); err != nil {
		return fmt.Errorf("replace organization types: %w", err)
	}
	for _, tag := range tags {
		if _, err := repo.AddTag(ctx, entityID, tag); err != nil {
			return fmt.Errorf("replace organization types: %w", err)
		}
	}
	return nil
}
