package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service is the generic CRUD capability entity services compose over.
// Every write runs exactly one staged mutation inside one unit of work, so a
// single call can never be partially applied.
type Service[T any, F Filter] struct {
	repo   Repository[T]
	tx     TransactionManager
	logger Logger
}

// NewService builds the generic service for one entity type.
func NewService[T any, F Filter](repo Repository[T], tx TransactionManager, logger Logger) *Service[T, F] {
	if logger == nil {
		logger = defLogger{}
	}
	return &Service[T, F]{repo: repo, tx: tx, logger: logger}
}

// GetByID returns the entity with the given id, NotFound when absent.
func (s *Service[T, F]) GetByID(ctx context.Context, id uuid.UUID, criteria ...SelectCriteria) (T, error) {
	return s.repo.GetByID(ctx, id, criteria...)
}

// GetByFilter returns the entities matching filter. Zero matches is
// NotFound, never an empty slice.
func (s *Service[T, F]) GetByFilter(ctx context.Context, filter F) ([]T, error) {
	records, err := s.repo.Get(ctx, filter.Criteria()...)
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		return nil, ErrNotFound
	}

	return records, nil
}

// Add stages one insert and commits it.
func (s *Service[T, F]) Add(ctx context.Context, record T) error {
	return s.tx.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := s.repo.AddTx(ctx, tx, record)
		return err
	})
}

// Update overwrites the stored entity, NotFound when the id is absent.
func (s *Service[T, F]) Update(ctx context.Context, record T, criteria ...UpdateCriteria) error {
	return s.tx.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := s.repo.UpdateTx(ctx, tx, record, criteria...)
		return err
	})
}

// Remove hard-deletes the entity with the given id. No tombstone is kept.
func (s *Service[T, F]) Remove(ctx context.Context, id uuid.UUID) error {
	return s.tx.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := s.repo.GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		return s.repo.RemoveTx(ctx, tx, record)
	})
}
