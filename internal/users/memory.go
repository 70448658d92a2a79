package users

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryUserRepository keeps users in process memory. Used by tests and
// storage-less setups.
type MemoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*User
	byEmail map[string]uuid.UUID
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:    map[uuid.UUID]*User{},
		byEmail: map[string]uuid.UUID{},
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func cloneUser(u *User) *User {
	if u == nil {
		return nil
	}
	out := *u
	return &out
}

func (r *MemoryUserRepository) Create(ctx context.Context, record *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneUser(record)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.byID[stored.ID] = stored
	r.byEmail[normalizeEmail(stored.Email)] = stored.ID
	return cloneUser(stored), nil
}

func (r *MemoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok {
		return nil, &UserNotFoundError{Key: id.String()}
	}
	return cloneUser(record), nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, &UserNotFoundError{Key: email}
	}
	return cloneUser(r.byID[id]), nil
}

func (r *MemoryUserRepository) List(ctx context.Context) ([]*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*User, 0, len(r.byID))
	for _, record := range r.byID {
		out = append(out, cloneUser(record))
	}
	return out, nil
}
