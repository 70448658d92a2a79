package consumption

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryConsumptionRepository keeps expenses in process memory. Used by
// tests and storage-less setups.
type MemoryConsumptionRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Consumption
}

func NewMemoryConsumptionRepository() *MemoryConsumptionRepository {
	return &MemoryConsumptionRepository{records: map[uuid.UUID]*Consumption{}}
}

func cloneConsumption(c *Consumption) *Consumption {
	if c == nil {
		return nil
	}
	out := *c
	if c.GroupID != nil {
		id := *c.GroupID
		out.GroupID = &id
	}
	return &out
}

func (r *MemoryConsumptionRepository) Create(ctx context.Context, record *Consumption) (*Consumption, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneConsumption(record)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.records[stored.ID] = stored
	return cloneConsumption(stored), nil
}

func (r *MemoryConsumptionRepository) GetByID(ctx context.Context, id uuid.UUID) (*Consumption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	return cloneConsumption(record), nil
}

func (r *MemoryConsumptionRepository) ListVisible(ctx context.Context, filter ListFilter) ([]*Consumption, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groupSet := make(map[uuid.UUID]bool, len(filter.GroupIDs))
	for _, id := range filter.GroupIDs {
		groupSet[id] = true
	}

	var out []*Consumption
	for _, record := range r.records {
		visible := record.UserID == filter.UserID ||
			(record.GroupID != nil && groupSet[*record.GroupID])
		if visible {
			out = append(out, cloneConsumption(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *MemoryConsumptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(r.records, id)
	return nil
}
