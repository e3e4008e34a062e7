// internal/outfit/memory_store.go
package outfit

import (
	"context"
	"sync"
	"time"

	"outfit-orchestrator/internal/models"
)

type memoryEntry struct {
	outfit    models.GeneratedOutfit
	expiresAt time.Time
}

// MemoryStore is an in-process Store used when Redis is not configured
// and in tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	clock   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.GeneratedOutfit, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if !entry.expiresAt.IsZero() && s.clock().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	outfit := entry.outfit
	return &outfit, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, outfit *models.GeneratedOutfit, ttl time.Duration) error {
	entry := memoryEntry{outfit: *outfit}
	if ttl > 0 {
		entry.expiresAt = s.clock().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}
