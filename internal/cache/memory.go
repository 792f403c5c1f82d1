package cache

import (
	"context"
	"sync"
	"time"
)

// memoryEntry is one stored value with its expiry.
type memoryEntry struct {
	expiry time.Time
	value  []byte
}

// MemoryStore is an in-process CacheStore with TTL expiry. Suitable for a
// single instance; replicas share nothing.
type MemoryStore struct {
	entries map[string]memoryEntry
	stopCh  chan struct{}
	mu      sync.RWMutex
}

// NewMemoryStore creates a memory store with a background sweep for expired
// entries.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		stopCh:  make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Get returns the value for key if present and unexpired.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, exists := s.entries[key]
	if !exists || time.Now().After(entry.expiry) {
		return nil, false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key for ttl.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		value:  value,
		expiry: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// sweep periodically removes expired entries.
func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.mu.Lock()
			now := time.Now()
			for key, entry := range s.entries {
				if now.After(entry.expiry) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

// Close stops the sweep goroutine.
func (s *MemoryStore) Close() error {
	close(s.stopCh)
	return nil
}
