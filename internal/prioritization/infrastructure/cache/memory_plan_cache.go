package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
)

type memoryEntry struct {
	snapshot  domain.PlanSnapshot
	expiresAt time.Time // zero = never
}

// InMemoryPlanCache implements domain.PlanCache in process memory. It backs
// local mode when no Redis URL is configured.
type InMemoryPlanCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewInMemoryPlanCache creates an empty cache.
func NewInMemoryPlanCache() *InMemoryPlanCache {
	return &InMemoryPlanCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns the snapshot stored for userID and date.
func (c *InMemoryPlanCache) Get(_ context.Context, userID uuid.UUID, date string) (*domain.PlanSnapshot, error) {
	key := domain.PlanCacheKey(userID, date)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, domain.ErrCacheMiss
	}
	if !entry.expiresAt.IsZero() && !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, domain.ErrCacheMiss
	}

	snapshot := entry.snapshot
	return &snapshot, nil
}

// Put stores snapshot. A non-positive ttl keeps it until replaced.
func (c *InMemoryPlanCache) Put(_ context.Context, snapshot domain.PlanSnapshot, ttl time.Duration) error {
	entry := memoryEntry{snapshot: snapshot}
	if ttl > 0 {
		entry.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[domain.PlanCacheKey(snapshot.UserID, snapshot.Date)] = entry
	c.mu.Unlock()
	return nil
}
