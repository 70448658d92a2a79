package consumption

import (
	"context"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type BunConsumptionRepository struct {
	db   *bun.DB
	repo repository.Repository[*Consumption]
}

func NewBunConsumptionRepository(db *bun.DB) *BunConsumptionRepository {
	return NewBunConsumptionRepositoryWithCache(db, nil, nil)
}

// NewBunConsumptionRepositoryWithCache constructs an expense repository with optional caching.
func NewBunConsumptionRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunConsumptionRepository {
	base := NewConsumptionRepository(db)
	return &BunConsumptionRepository{db: db, repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunConsumptionRepository) Create(ctx context.Context, record *Consumption) (*Consumption, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunConsumptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Consumption, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunConsumptionRepository) ListVisible(ctx context.Context, filter ListFilter) ([]*Consumption, error) {
	records, _, err := r.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
				q = q.Where("?TableAlias.user_id = ?", filter.UserID)
				if len(filter.GroupIDs) > 0 {
					q = q.WhereOr("?TableAlias.group_id IN (?)", bun.In(filter.GroupIDs))
				}
				return q
			})
			return q.OrderExpr("?TableAlias.date DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("consumption repository error: %w", err)
	}
	return records, nil
}

func (r *BunConsumptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("consumption repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewDelete().
			Model((*Consumption)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete consumption: %w", err)
		}
		affected, err := result.RowsAffected()
		if err == nil && affected == 0 {
			return &NotFoundError{Key: id.String()}
		}
		return nil
	})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Key: key}
	}
	return fmt.Errorf("consumption repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
