package identity

import (
	"context"
	"database/sql"
	"errors"
	"reflect"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// SelectCriteria narrows or expands a select query. Multiple criteria
// applied to the same query combine with AND semantics; no criteria means
// the always-true predicate.
type SelectCriteria func(*bun.SelectQuery) *bun.SelectQuery

// UpdateCriteria adjusts an update query, e.g. limiting the touched columns.
type UpdateCriteria func(*bun.UpdateQuery) *bun.UpdateQuery

// WithColumns limits an update to the given columns.
func WithColumns(columns ...string) UpdateCriteria {
	return func(q *bun.UpdateQuery) *bun.UpdateQuery {
		return q.Column(columns...)
	}
}

// ModelHandlers carries the entity specific accessors the generic
// repository needs.
type ModelHandlers[T any] struct {
	NewRecord func() T
	GetID     func(T) uuid.UUID
	SetID     func(T, uuid.UUID)
}

// Repository is the generic query/mutate surface over a single entity type.
// The Tx variants run against the bun.IDB they are handed; inside a unit of
// work that is the open transaction, so mutations take effect only when
// RunInTx commits. No entity-level locking is performed.
type Repository[T any] interface {
	Get(ctx context.Context, criteria ...SelectCriteria) ([]T, error)
	GetTx(ctx context.Context, tx bun.IDB, criteria ...SelectCriteria) ([]T, error)
	GetOne(ctx context.Context, criteria ...SelectCriteria) (T, error)
	GetOneTx(ctx context.Context, tx bun.IDB, criteria ...SelectCriteria) (T, error)
	GetByID(ctx context.Context, id uuid.UUID, criteria ...SelectCriteria) (T, error)
	GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID, criteria ...SelectCriteria) (T, error)
	Add(ctx context.Context, record T) (T, error)
	AddTx(ctx context.Context, tx bun.IDB, record T) (T, error)
	Update(ctx context.Context, record T, criteria ...UpdateCriteria) (T, error)
	UpdateTx(ctx context.Context, tx bun.IDB, record T, criteria ...UpdateCriteria) (T, error)
	Remove(ctx context.Context, record T) error
	RemoveTx(ctx context.Context, tx bun.IDB, record T) error
}

type repo[T any] struct {
	db       *bun.DB
	handlers ModelHandlers[T]
}

// NewRepository builds a Repository for one entity type.
func NewRepository[T any](db *bun.DB, handlers ModelHandlers[T]) Repository[T] {
	return &repo[T]{db: db, handlers: handlers}
}

func (r *repo[T]) Get(ctx context.Context, criteria ...SelectCriteria) ([]T, error) {
	return r.GetTx(ctx, r.db, criteria...)
}

func (r *repo[T]) GetTx(ctx context.Context, tx bun.IDB, criteria ...SelectCriteria) ([]T, error) {
	var records []T

	q := tx.NewSelect().Model(&records)
	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Scan(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "select failed")
	}

	return records, nil
}

func (r *repo[T]) GetOne(ctx context.Context, criteria ...SelectCriteria) (T, error) {
	return r.GetOneTx(ctx, r.db, criteria...)
}

func (r *repo[T]) GetOneTx(ctx context.Context, tx bun.IDB, criteria ...SelectCriteria) (T, error) {
	record := r.handlers.NewRecord()

	q := tx.NewSelect().Model(record)
	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Limit(1).Scan(ctx); err != nil {
		var zero T
		if isNoRows(err) {
			return zero, ErrNotFound
		}
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "select failed")
	}

	return record, nil
}

func (r *repo[T]) GetByID(ctx context.Context, id uuid.UUID, criteria ...SelectCriteria) (T, error) {
	return r.GetByIDTx(ctx, r.db, id, criteria...)
}

func (r *repo[T]) GetByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID, criteria ...SelectCriteria) (T, error) {
	record := r.handlers.NewRecord()
	r.handlers.SetID(record, id)

	q := tx.NewSelect().Model(record).WherePK()
	for _, c := range criteria {
		q.Apply(c)
	}

	if err := q.Scan(ctx); err != nil {
		var zero T
		if isNoRows(err) {
			return zero, ErrNotFound
		}
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "select failed")
	}

	return record, nil
}

func (r *repo[T]) Add(ctx context.Context, record T) (T, error) {
	return r.AddTx(ctx, r.db, record)
}

func (r *repo[T]) AddTx(ctx context.Context, tx bun.IDB, record T) (T, error) {
	var zero T
	if isNilRecord(record) {
		return zero, ErrInvalidArgument
	}

	if r.handlers.GetID(record) == uuid.Nil {
		r.handlers.SetID(record, uuid.New())
	}

	if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
		if IsUniqueViolation(err) {
			return zero, ErrDuplicateName
		}
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "insert failed")
	}

	return record, nil
}

func (r *repo[T]) Update(ctx context.Context, record T, criteria ...UpdateCriteria) (T, error) {
	return r.UpdateTx(ctx, r.db, record, criteria...)
}

func (r *repo[T]) UpdateTx(ctx context.Context, tx bun.IDB, record T, criteria ...UpdateCriteria) (T, error) {
	var zero T
	if isNilRecord(record) {
		return zero, ErrInvalidArgument
	}

	q := tx.NewUpdate().Model(record).WherePK()
	for _, c := range criteria {
		q.Apply(c)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		if IsUniqueViolation(err) {
			return zero, ErrDuplicateName
		}
		return zero, goerrors.Wrap(err, goerrors.CategoryInternal, "update failed")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return zero, ErrNotFound
	}

	return record, nil
}

func (r *repo[T]) Remove(ctx context.Context, record T) error {
	return r.RemoveTx(ctx, r.db, record)
}

func (r *repo[T]) RemoveTx(ctx context.Context, tx bun.IDB, record T) error {
	if isNilRecord(record) {
		return ErrInvalidArgument
	}

	res, err := tx.NewDelete().Model(record).WherePK().Exec(ctx)
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "delete failed")
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func isNilRecord[T any](record T) bool {
	v := reflect.ValueOf(record)
	if !v.IsValid() {
		return true
	}
	return v.Kind() == reflect.Pointer && v.IsNil()
}
