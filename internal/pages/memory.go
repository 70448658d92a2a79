package pages

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/monospace/pagebuilder/internal/components"
)

// MemoryPageRepository keeps pages in process memory. Used by tests and
// storage-less setups.
type MemoryPageRepository struct {
	mu    sync.RWMutex
	pages map[uuid.UUID]*Page
}

func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{pages: map[uuid.UUID]*Page{}}
}

func clonePage(p *Page) *Page {
	if p == nil {
		return nil
	}
	out := *p
	out.Components = components.CloneTree(p.Components)
	if p.Metadata != nil {
		meta := make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			meta[k] = v
		}
		out.Metadata = meta
	}
	if p.UserID != nil {
		id := *p.UserID
		out.UserID = &id
	}
	return &out
}

func (r *MemoryPageRepository) Create(ctx context.Context, record *Page) (*Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := clonePage(record)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.pages[stored.ID] = stored
	return clonePage(stored), nil
}

func (r *MemoryPageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.pages[id]
	if !ok {
		return nil, &PageNotFoundError{Key: id.String()}
	}
	return clonePage(record), nil
}

func (r *MemoryPageRepository) GetBySlug(ctx context.Context, slug string) (*Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var newest *Page
	for _, record := range r.pages {
		if record.Slug != slug {
			continue
		}
		if newest == nil || record.CreatedAt.After(newest.CreatedAt) {
			newest = record
		}
	}
	if newest == nil {
		return nil, &PageNotFoundError{Key: slug}
	}
	return clonePage(newest), nil
}

func (r *MemoryPageRepository) List(ctx context.Context, filter ListFilter) ([]*Page, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*Page
	for _, record := range r.pages {
		if filter.UserID != nil && (record.UserID == nil || *record.UserID != *filter.UserID) {
			continue
		}
		if filter.Published != nil && record.IsPublished != *filter.Published {
			continue
		}
		matches = append(matches, record)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	if filter.Offset > 0 {
		if filter.Offset >= len(matches) {
			matches = nil
		} else {
			matches = matches[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(matches) > filter.Limit {
		matches = matches[:filter.Limit]
	}

	out := make([]*Page, 0, len(matches))
	for _, record := range matches {
		out = append(out, clonePage(record))
	}
	return out, total, nil
}

func (r *MemoryPageRepository) Update(ctx context.Context, record *Page) (*Page, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[record.ID]; !ok {
		return nil, &PageNotFoundError{Key: record.ID.String()}
	}
	stored := clonePage(record)
	r.pages[stored.ID] = stored
	return clonePage(stored), nil
}

func (r *MemoryPageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pages[id]; !ok {
		return &PageNotFoundError{Key: id.String()}
	}
	delete(r.pages, id)
	return nil
}
