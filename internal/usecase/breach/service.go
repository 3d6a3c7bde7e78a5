package breach

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"databreach-registry/internal/domain/entity"
	"databreach-registry/internal/observability/metrics"
	"databreach-registry/internal/observability/tracing"
	"databreach-registry/internal/repository"
)

// Operation outcome labels.
const (
	statusSuccess  = "success"
	statusInvalid  = "invalid"
	statusNotFound = "not_found"
	statusError    = "error"
)

// Service provides the breach aggregate use cases.
// Every write runs inside a single transaction obtained from Tx.
type Service struct {
	Tx repository.TxManager
}

// Create validates req, then in one transaction resolves or creates the entity,
// inserts the breach and its sources, and returns the stored document.
// Returns entity.ValidationErrors when any field is missing or invalid; nothing is written then.
func (s *Service) Create(ctx context.Context, req Request) (*Document, error) {
	var doc Document
	err := s.observe(ctx, "create", func(ctx context.Context) error {
		plan, err := FromWire(req, false)
		if err != nil {
			return err
		}

		return s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			ent, created, err := resolveOrCreate(ctx, repos.Entities, plan.Entity.Name, plan.Entity.Tags)
			if err != nil {
				return err
			}

			b := &entity.DataBreach{
				EntityID: ent.ID,
				Year:     *plan.Year,
				Records:  *plan.Records,
				Method:   *plan.Method,
			}
			if err := repos.Breaches.Create(ctx, b); err != nil {
				return fmt.Errorf("create breach: %w", err)
			}
			if _, err := repos.Sources.CreateAll(ctx, b.ID, *plan.Sources); err != nil {
				return fmt.Errorf("create sources: %w", err)
			}
			metrics.RecordSourcesWritten(len(*plan.Sources))

			agg, err := newAssembler(repos).assemble(ctx, b)
			if err != nil {
				return err
			}
			doc = ToWire(agg)

			slog.Info("data breach created",
				slog.Int64("breach_id", b.ID),
				slog.Int64("entity_id", ent.ID),
				slog.Bool("entity_created", created))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Update applies the fields present in req to breach id in one transaction.
// When req carries an entity, the breach is repointed to the entity of that name
// (created if needed) and that entity's tags are replaced with the request's list,
// which also changes the tags other breaches of the entity report. When req carries
// sources, they replace the breach's sources; otherwise sources are kept.
// Returns ErrBreachNotFound if the breach does not exist, checked before validation.
func (s *Service) Update(ctx context.Context, id int64, req Request) (*Document, error) {
	var doc Document
	err := s.observe(ctx, "update", func(ctx context.Context) error {
		if id <= 0 {
			return ErrBreachNotFound
		}
		plan, planErr := FromWire(req, true)

		return s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			b, err := repos.Breaches.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("get breach: %w", err)
			}
			if b == nil {
				return ErrBreachNotFound
			}
			if planErr != nil {
				return planErr
			}

			if plan.Year != nil {
				b.Year = *plan.Year
			}
			if plan.Records != nil {
				b.Records = *plan.Records
			}
			if plan.Method != nil {
				b.Method = *plan.Method
			}
			if plan.Entity != nil {
				ent, created, err := resolveOrCreate(ctx, repos.Entities, plan.Entity.Name, plan.Entity.Tags)
				if err != nil {
					return err
				}
				if !created {
					if err := replaceTags(ctx, repos.Entities, ent.ID, plan.Entity.Tags); err != nil {
						return err
					}
				}
				b.EntityID = ent.ID
			}

			if err := repos.Breaches.Update(ctx, b); err != nil {
				return fmt.Errorf("update breach: %w", err)
			}

			if plan.Sources != nil {
				if _, err := repos.Sources.DeleteAll(ctx, b.ID); err != nil {
					return fmt.Errorf("replace sources: %w", err)
				}
				if _, err := repos.Sources.CreateAll(ctx, b.ID, *plan.Sources); err != nil {
					return fmt.Errorf("replace sources: %w", err)
				}
				metrics.RecordSourcesWritten(len(*plan.Sources))
			}

			agg, err := newAssembler(repos).assemble(ctx, b)
			if err != nil {
				return err
			}
			doc = ToWire(agg)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Delete removes the breach's sources and then the breach in one transaction.
// The entity is kept. Returns ErrBreachNotFound if the breach does not exist.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.observe(ctx, "delete", func(ctx context.Context) error {
		if id <= 0 {
			return ErrBreachNotFound
		}
		return s.Tx.WithinTx(ctx, func(ctx context.Context, repos repository.Repositories) error {
			b, err := repos.Breaches.Get(ctx, id)
			if err != nil {
				return fmt.Errorf("get breach: %w", err)
			}
			if b == nil {
				return ErrBreachNotFound
			}

			n, err := repos.Sources.DeleteAll(ctx, id)
			if err != nil {
				return fmt.Errorf("delete sources: %w", err)
			}
			if err := repos.Breaches.Delete(ctx, id); err != nil {
				if errors.Is(err, repository.ErrNoRows) {
					return ErrBreachNotFound
				}
				return fmt.Errorf("delete breach: %w", err)
			}

			slog.Info("data breach deleted",
				slog.Int64("breach_id", id),
				slog.Int64("sources_deleted", n))
			return nil
		})
	})
}

// Get returns the document of breach id or ErrBreachNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*Document, error) {
	var doc Document
	err := s.observe(ctx, "get", func(ctx context.Context) error {
		if id <= 0 {
			return ErrBreachNotFound
		}
		repos := s.Tx.Repos()
		b, err := repos.Breaches.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get breach: %w", err)
		}
		if b == nil {
			return ErrBreachNotFound
		}
		agg, err := newAssembler(repos).assemble(ctx, b)
		if err != nil {
			return err
		}
		doc = ToWire(agg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns every breach document in insertion order.
func (s *Service) List(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := s.observe(ctx, "list", func(ctx context.Context) error {
		repos := s.Tx.Repos()
		breaches, err := repos.Breaches.List(ctx)
		if err != nil {
			return fmt.Errorf("list breaches: %w", err)
		}

		a := newAssembler(repos)
		docs = make([]Document, 0, len(breaches))
		for _, b := range breaches {
			agg, err := a.assemble(ctx, b)
			if err != nil {
				return err
			}
			docs = append(docs, ToWire(agg))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// observe wraps an operation in a span and records its outcome and latency.
func (s *Service) observe(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, span := tracing.Start(ctx, "breach."+op, attribute.String("breach.operation", op))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	status := outcome(err)
	metrics.RecordBreachOperation(op, status, time.Since(start))

	span.SetAttributes(attribute.String("breach.status", status))
	if status == statusError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return statusSuccess
	case errors.Is(err, entity.ErrValidationFailed), errors.Is(err, entity.ErrInvalidInput):
		return statusInvalid
	case errors.Is(err, entity.ErrNotFound):
		return statusNotFound
	default:
		return statusError
	}
}
