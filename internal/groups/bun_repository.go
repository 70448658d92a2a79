package groups

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

type BunGroupRepository struct {
	db       *bun.DB
	groups   repository.Repository[*Group]
	members  repository.Repository[*Member]
	messages repository.Repository[*Message]
}

func NewBunGroupRepository(db *bun.DB) *BunGroupRepository {
	return NewBunGroupRepositoryWithCache(db, nil, nil)
}

// NewBunGroupRepositoryWithCache constructs a group repository with optional caching.
func NewBunGroupRepositoryWithCache(db *bun.DB, cacheService cache.CacheService, keySerializer cache.KeySerializer) *BunGroupRepository {
	return &BunGroupRepository{
		db:       db,
		groups:   wrapWithCache(NewGroupRepository(db), cacheService, keySerializer),
		members:  wrapWithCache(NewMemberRepository(db), cacheService, keySerializer),
		messages: wrapWithCache(NewMessageRepository(db), cacheService, keySerializer),
	}
}

// CreateWithAdmin inserts the group and its first membership in one
// transaction so a group can never exist without an admin.
func (r *BunGroupRepository) CreateWithAdmin(ctx context.Context, group *Group, admin *Member) (*Group, error) {
	if r.db == nil {
		return nil, fmt.Errorf("group repository: database not configured")
	}

	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(group).Exec(ctx); err != nil {
			return fmt.Errorf("insert group: %w", err)
		}
		if _, err := tx.NewInsert().Model(admin).Exec(ctx); err != nil {
			return fmt.Errorf("insert group admin: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *BunGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	result, err := r.groups.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return result, nil
}

func (r *BunGroupRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	records, _, err := r.groups.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.
				Join("JOIN group_members AS gm ON gm.group_id = ?TableAlias.id").
				Where("gm.user_id = ?", userID).
				OrderExpr("?TableAlias.created_at DESC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("group repository error: %w", err)
	}
	return records, nil
}

func (r *BunGroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*Member, error) {
	records, _, err := r.members.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.group_id = ?", groupID).
				OrderExpr("?TableAlias.joined_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("group repository error: %w", err)
	}
	return records, nil
}

func (r *BunGroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	records, _, err := r.members.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.group_id = ?", groupID).
				Where("?TableAlias.user_id = ?", userID)
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return false, fmt.Errorf("group repository error: %w", err)
	}
	return len(records) > 0, nil
}

func (r *BunGroupRepository) AddMember(ctx context.Context, member *Member) (*Member, error) {
	created, err := r.members.Create(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("group repository error: %w", err)
	}
	return created, nil
}

func (r *BunGroupRepository) CreateMessage(ctx context.Context, message *Message) (*Message, error) {
	created, err := r.messages.Create(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("group repository error: %w", err)
	}
	return created, nil
}

func (r *BunGroupRepository) ListMessages(ctx context.Context, groupID uuid.UUID) ([]*Message, error) {
	records, _, err := r.messages.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.group_id = ?", groupID).
				OrderExpr("?TableAlias.created_at ASC")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("group repository error: %w", err)
	}
	return records, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &GroupNotFoundError{Key: key}
	}
	return fmt.Errorf("group repository error: %w", err)
}

func wrapWithCache[T any](base repository.Repository[T], cacheService cache.CacheService, keySerializer cache.KeySerializer) repository.Repository[T] {
	if cacheService == nil || keySerializer == nil {
		return base
	}
	return repositorycache.New(base, cacheService, keySerializer)
}
