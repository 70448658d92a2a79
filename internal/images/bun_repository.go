package images

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

type BunImageRepository struct {
	db   *bun.DB
	repo repository.Repository[*Image]
}

func NewBunImageRepository(db *bun.DB) *BunImageRepository {
	return NewBunImageRepositoryWithCache(db, nil, nil)
}

// NewBunImageRepositoryWithCache constructs an image repository with optional caching.
func NewBunImageRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunImageRepository {
	base := NewImageRepository(db)
	return &BunImageRepository{db: db, repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunImageRepository) Create(ctx context.Context, record *Image) (*Image, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunImageRepository) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	result, err := r.repo.GetByIdentifier(ctx, filename)
	if err != nil {
		return nil, mapRepositoryError(err, filename)
	}
	return result, nil
}

func (r *BunImageRepository) List(ctx context.Context, filter ListFilter) ([]*Image, int, error) {
	criteria := []repository.SelectCriteria{
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			if filter.UserID != nil {
				q = q.Where("?TableAlias.user_id = ?", *filter.UserID)
			}
			return q.OrderExpr("?TableAlias.uploaded_at DESC")
		}),
	}
	if filter.Limit > 0 {
		criteria = append(criteria, repository.SelectPaginate(filter.Limit, filter.Offset))
	}
	records, total, err := r.repo.List(ctx, criteria...)
	if err != nil {
		return nil, 0, fmt.Errorf("image repository error: %w", err)
	}
	return records, total, nil
}

func (r *BunImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r.db == nil {
		return fmt.Errorf("image repository: database not configured")
	}

	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		result, err := tx.NewDelete().
			Model((*Image)(nil)).
			Where("?TableAlias.id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		affected, err := result.RowsAffected()
		if err == nil && affected == 0 {
			return &ImageNotFoundError{Key: id.String()}
		}
		return nil
	})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &ImageNotFoundError{Key: key}
	}
	return fmt.Errorf("image repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
