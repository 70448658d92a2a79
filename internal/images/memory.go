package images

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryImageRepository keeps the image catalog in process memory. Used by
// tests and storage-less setups.
type MemoryImageRepository struct {
	mu     sync.RWMutex
	images map[uuid.UUID]*Image
}

func NewMemoryImageRepository() *MemoryImageRepository {
	return &MemoryImageRepository{images: map[uuid.UUID]*Image{}}
}

func cloneImage(i *Image) *Image {
	if i == nil {
		return nil
	}
	out := *i
	if i.Width != nil {
		w := *i.Width
		out.Width = &w
	}
	if i.Height != nil {
		h := *i.Height
		out.Height = &h
	}
	if i.UserID != nil {
		id := *i.UserID
		out.UserID = &id
	}
	return &out
}

func (r *MemoryImageRepository) Create(ctx context.Context, record *Image) (*Image, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := cloneImage(record)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.images[stored.ID] = stored
	return cloneImage(stored), nil
}

func (r *MemoryImageRepository) GetByID(ctx context.Context, id uuid.UUID) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.images[id]
	if !ok {
		return nil, &ImageNotFoundError{Key: id.String()}
	}
	return cloneImage(record), nil
}

func (r *MemoryImageRepository) GetByFilename(ctx context.Context, filename string) (*Image, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, record := range r.images {
		if record.Filename == filename {
			return cloneImage(record), nil
		}
	}
	return nil, &ImageNotFoundError{Key: filename}
}

func (r *MemoryImageRepository) List(ctx context.Context, filter ListFilter) ([]*Image, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*Image
	for _, record := range r.images {
		if filter.UserID != nil && (record.UserID == nil || *record.UserID != *filter.UserID) {
			continue
		}
		matches = append(matches, record)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].UploadedAt.After(matches[j].UploadedAt)
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

	out := make([]*Image, 0, len(matches))
	for _, record := range matches {
		out = append(out, cloneImage(record))
	}
	return out, total, nil
}

func (r *MemoryImageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.images[id]; !ok {
		return &ImageNotFoundError{Key: id.String()}
	}
	delete(r.images, id)
	return nil
}
