package ratelimit

import (
	"context"
	"sync"
	"time"
)

// InMemoryRateLimitStore keeps request timestamps per key under one mutex.
// When the key count exceeds MaxKeys the least recently touched key is
// evicted, bounding memory regardless of how many distinct clients appear.
type InMemoryRateLimitStore struct {
	mu         sync.Mutex
	requests   map[string][]time.Time
	lastAccess map[string]time.Time
	cfg        InMemoryStoreConfig
	evicted    int64
}

// InMemoryStoreConfig configures the in-memory store.
type InMemoryStoreConfig struct {
	// MaxKeys is the maximum number of keys tracked before LRU eviction.
	MaxKeys int
}

// DefaultInMemoryStoreConfig returns the default store configuration.
func DefaultInMemoryStoreConfig() InMemoryStoreConfig {
	return InMemoryStoreConfig{MaxKeys: 10000}
}

// NewInMemoryRateLimitStore creates an empty store.
func NewInMemoryRateLimitStore(config InMemoryStoreConfig) *InMemoryRateLimitStore {
	if config.MaxKeys <= 0 {
		config.MaxKeys = DefaultInMemoryStoreConfig().MaxKeys
	}
	return &InMemoryRateLimitStore{
		requests:   make(map[string][]time.Time),
		lastAccess: make(map[string]time.Time),
		cfg:        config,
	}
}

// AddRequest records one timestamp for the key.
func (s *InMemoryRateLimitStore) AddRequest(ctx context.Context, key string, timestamp time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.touchLocked(key, timestamp)
	s.requests[key] = append(s.requests[key], timestamp)
	return nil
}

// GetRequestCount counts timestamps for the key after the cutoff.
func (s *InMemoryRateLimitStore) GetRequestCount(ctx context.Context, key string, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.countLocked(key, cutoff), nil
}

// CheckAndAddRequest atomically counts and, if under the limit, records.
func (s *InMemoryRateLimitStore) CheckAndAddRequest(ctx context.Context, key string, timestamp, cutoff time.Time, limit int) (bool, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := s.countLocked(key, cutoff)
	if count >= limit {
		return false, count, nil
	}

	s.touchLocked(key, timestamp)
	s.requests[key] = append(s.requests[key], timestamp)
	return true, count + 1, nil
}

// Cleanup drops timestamps older than the cutoff and removes empty keys.
func (s *InMemoryRateLimitStore) Cleanup(ctx context.Context, cutoff time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, stamps := range s.requests {
		kept := stamps[:0]
		for _, ts := range stamps {
			if ts.After(cutoff) {
				kept = append(kept, ts)
			}
		}
		if len(kept) == 0 {
			delete(s.requests, key)
			delete(s.lastAccess, key)
		} else {
			s.requests[key] = kept
		}
	}
	return nil
}

// KeyCount returns the number of keys currently tracked.
func (s *InMemoryRateLimitStore) KeyCount(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests), nil
}

// EvictedTotal returns how many keys have been evicted since construction.
func (s *InMemoryRateLimitStore) EvictedTotal() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.evicted
}

// countLocked counts timestamps after cutoff. Caller holds the mutex.
func (s *InMemoryRateLimitStore) countLocked(key string, cutoff time.Time) int {
	count := 0
	for _, ts := range s.requests[key] {
		if ts.After(cutoff) {
			count++
		}
	}
	return count
}

// touchLocked updates the access time for the key, evicting the least
// recently used key first when the store is full. Caller holds the mutex.
func (s *InMemoryRateLimitStore) touchLocked(key string, now time.Time) {
	if _, exists := s.requests[key]; !exists && len(s.requests) >= s.cfg.MaxKeys {
		s.evictLRULocked()
	}
	s.lastAccess[key] = now
}

func (s *InMemoryRateLimitStore) evictLRULocked() {
	var oldestKey string
	var oldest time.Time
	first := true
	for key, accessed := range s.lastAccess {
		if first || accessed.Before(oldest) {
			oldestKey = key
			oldest = accessed
			first = false
		}
	}
	if oldestKey != "" {
		delete(s.requests, oldestKey)
		delete(s.lastAccess, oldestKey)
		s.evicted++
	}
}
