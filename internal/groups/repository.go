package groups

import (
	"context"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository abstracts group, membership and message persistence.
type Repository interface {
	CreateWithAdmin(ctx context.Context, group *Group, admin *Member) (*Group, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Group, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error)
	ListMembers(ctx context.Context, groupID uuid.UUID) ([]*Member, error)
	IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error)
	AddMember(ctx context.Context, member *Member) (*Member, error)
	CreateMessage(ctx context.Context, message *Message) (*Message, error)
	ListMessages(ctx context.Context, groupID uuid.UUID) ([]*Message, error)
}

// NewGroupRepository builds the bun-backed generic repository for groups.
func NewGroupRepository(db *bun.DB) repository.Repository[*Group] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Group]{
		NewRecord: func() *Group { return &Group{} },
		GetID: func(g *Group) uuid.UUID {
			return g.ID
		},
		SetID: func(g *Group, id uuid.UUID) {
			g.ID = id
		},
	})
}

// NewMemberRepository builds the bun-backed generic repository for memberships.
func NewMemberRepository(db *bun.DB) repository.Repository[*Member] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Member]{
		NewRecord: func() *Member { return &Member{} },
		GetID: func(m *Member) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Member, id uuid.UUID) {
			m.ID = id
		},
	})
}

// NewMessageRepository builds the bun-backed generic repository for messages.
func NewMessageRepository(db *bun.DB) repository.Repository[*Message] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*Message]{
		NewRecord: func() *Message { return &Message{} },
		GetID: func(m *Message) uuid.UUID {
			return m.ID
		},
		SetID: func(m *Message, id uuid.UUID) {
			m.ID = id
		},
	})
}
