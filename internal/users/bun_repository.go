package users

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

type BunUserRepository struct {
	repo repository.Repository[*User]
}

func NewBunUserRepository(db *bun.DB) *BunUserRepository {
	return NewBunUserRepositoryWithCache(db, nil, nil)
}

// NewBunUserRepositoryWithCache constructs a user repository with optional caching.
func NewBunUserRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunUserRepository {
	base := NewUserRepository(db)
	return &BunUserRepository{repo: wrapWithCache(base, cacheService, keySerializer)}
}

func (r *BunUserRepository) Create(ctx context.Context, record *User) (*User, error) {
	created, err := r.repo.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *BunUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	result, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	result, err := r.repo.GetByIdentifier(ctx, email)
	if err != nil {
		return nil, mapRepositoryError(err, email)
	}
	return result, nil
}

func (r *BunUserRepository) List(ctx context.Context) ([]*User, error) {
	records, _, err := r.repo.List(ctx)
	return records, err
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &UserNotFoundError{Key: key}
	}
	return fmt.Errorf("user repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
