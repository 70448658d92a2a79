package storage

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MemoryStorage keeps uploaded objects in process memory and records every
// call. Tests assert against it; storage-less setups can run on it too.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
	types   map[string]string
	uploads []string
	removes []string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		objects: map[string][]byte{},
		types:   map[string]string{},
	}
}

func (s *MemoryStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[key] = buf
	s.types[key] = contentType
	s.uploads = append(s.uploads, key)
	return nil
}

func (s *MemoryStorage) PublicURL(key string) string {
	return fmt.Sprintf("memory://%s", strings.TrimPrefix(key, "/"))
}

func (s *MemoryStorage) Remove(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.objects, key)
		delete(s.types, key)
		s.removes = append(s.removes, key)
	}
	return nil
}

// Object returns the stored bytes and content type for a key.
func (s *MemoryStorage) Object(key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, s.types[key], true
}

// UploadedKeys returns every key passed to Upload, in call order.
func (s *MemoryStorage) UploadedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.uploads...)
}

// RemovedKeys returns every key passed to Remove, in call order.
func (s *MemoryStorage) RemovedKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.removes...)
}

// Len reports how many objects are currently stored.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
