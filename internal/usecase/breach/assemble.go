package breach

import (
	"context"
	"fmt"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/repository"
)

type entityView struct {
	entity *entity.Entity
	tags   []string
}

// assembler builds aggregates, reading each entity and its tags once.
type assembler struct {
	repos    repository.Repositories
	entities map[int64]entityView
}

func newAssembler(repos repository.Repositories) *assembler {
	return &assembler{repos: repos, entities: make(map[int64]entityView)}
}

func (a *assembler) assemble(ctx context.Context, b *entity.DataBreach) (*entity.Aggregate, error) {
	view, ok := a.entities[b.EntityID]
	if !ok {
		e, err := a.repos.Entities.Get(ctx, b.EntityID)
		if err != nil {
			return nil, fmt.Errorf("load entity: %w", err)
		}
		if e == nil {
			return nil, fmt.Errorf("load entity %d of breach %d: missing row", b.EntityID, b.ID)
		}
		tags, err := a.repos.Entities.ListTags(ctx, e.ID)
		if err != nil {
			return nil, fmt.Errorf("load organization types: %w", err)
		}
		view = entityView{entity: e, tags: tags}
		a.entities[b.EntityID] = view
	}

	sources, err := a.repos.Sources.ListByBreach(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}
	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		urls = append(urls, s.URL)
	}

	return &entity.Aggregate{
		Breach:  *b,
		Entity:  *view.entity,
		Tags:    view.tags,
		Sources: urls,
	}, nil
}
