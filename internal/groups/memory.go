package groups

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryGroupRepository keeps groups, memberships and messages in process
// memory. Used by tests and storage-less setups.
type MemoryGroupRepository struct {
	mu       sync.RWMutex
	groups   map[uuid.UUID]*Group
	members  []*Member
	messages []*Message
}

func NewMemoryGroupRepository() *MemoryGroupRepository {
	return &MemoryGroupRepository{groups: map[uuid.UUID]*Group{}}
}

func cloneGroup(g *Group) *Group {
	if g == nil {
		return nil
	}
	out := *g
	out.Members = nil
	return &out
}

func cloneMember(m *Member) *Member {
	if m == nil {
		return nil
	}
	out := *m
	return &out
}

func cloneMessage(m *Message) *Message {
	if m == nil {
		return nil
	}
	out := *m
	if m.ConsumptionID != nil {
		id := *m.ConsumptionID
		out.ConsumptionID = &id
	}
	return &out
}

func (r *MemoryGroupRepository) CreateWithAdmin(ctx context.Context, group *Group, admin *Member) (*Group, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneGroup(group)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.groups[stored.ID] = stored

	member := cloneMember(admin)
	if member.ID == uuid.Nil {
		member.ID = uuid.New()
	}
	member.GroupID = stored.ID
	r.members = append(r.members, member)

	return cloneGroup(stored), nil
}

func (r *MemoryGroupRepository) GetByID(ctx context.Context, id uuid.UUID) (*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.groups[id]
	if !ok {
		return nil, &GroupNotFoundError{Key: id.String()}
	}
	return cloneGroup(record), nil
}

func (r *MemoryGroupRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Group
	for _, member := range r.members {
		if member.UserID != userID {
			continue
		}
		if record, ok := r.groups[member.GroupID]; ok {
			out = append(out, cloneGroup(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *MemoryGroupRepository) ListMembers(ctx context.Context, groupID uuid.UUID) ([]*Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Member
	for _, member := range r.members {
		if member.GroupID == groupID {
			out = append(out, cloneMember(member))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].JoinedAt.Before(out[j].JoinedAt)
	})
	return out, nil
}

func (r *MemoryGroupRepository) IsMember(ctx context.Context, groupID, userID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, member := range r.members {
		if member.GroupID == groupID && member.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryGroupRepository) AddMember(ctx context.Context, member *Member) (*Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneMember(member)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.members = append(r.members, stored)
	return cloneMember(stored), nil
}

func (r *MemoryGroupRepository) CreateMessage(ctx context.Context, message *Message) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneMessage(message)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.messages = append(r.messages, stored)
	return cloneMessage(stored), nil
}

func (r *MemoryGroupRepository) ListMessages(ctx context.Context, groupID uuid.UUID) ([]*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Message
	for _, message := range r.messages {
		if message.GroupID == groupID {
			out = append(out, cloneMessage(message))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
