package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryReportCache implements ReportCache with a process-local map.
// State is not shared across instances; use the Redis backend when
// running more than one replica.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates an in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[uuid.UUID]map[string]memoryEntry),
	}
}

// Get returns the cached payload for a key, or false when absent or expired
func (c *InMemoryReportCache) Get(_ context.Context, ownerID uuid.UUID, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[ownerID][key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload under a key with the given TTL
func (c *InMemoryReportCache) Set(_ context.Context, ownerID uuid.UUID, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	owner, ok := c.entries[ownerID]
	if !ok {
		owner = make(map[string]memoryEntry)
		c.entries[ownerID] = owner
	}
	owner[key] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// InvalidateOwner drops all cached reports for an owner
func (c *InMemoryReportCache) InvalidateOwner(_ context.Context, ownerID uuid.UUID) error {
	c.mu.Lock()
	delete(c.entries, ownerID)
	c.mu.Unlock()
	return nil
}

// Close is a no-op for the in-memory backend
func (c *InMemoryReportCache) Close() error {
	return nil
}

var _ ReportCache = (*InMemoryReportCache)(nil)
