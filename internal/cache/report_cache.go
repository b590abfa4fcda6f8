package cache

import (
	"context"
	"sync"
	"time"

	"mindscreen/internal/model"
)

// ReportCache stores generated reports keyed by profile hash
type ReportCache interface {
	Get(ctx context.Context, key string) (*model.CacheEntry, error)
	Put(ctx context.Context, key string, entry *model.CacheEntry) error
	EvictExpired(ctx context.Context) int
}

// memoryReportCache is the in-process tier. Capacity is a soft ceiling:
// when a Put pushes the map past it, only already-expired entries are
// evicted (bounded staleness, not LRU), so under sustained unique load
// the map grows until TTLs run out.
type memoryReportCache struct {
	mu         sync.RWMutex
	entries    map[string]*model.CacheEntry
	maxEntries int
	now        func() time.Time
}

// NewMemoryReportCache creates the in-memory cache tier
func NewMemoryReportCache(maxEntries int) ReportCache {
	return &memoryReportCache{
		entries:    make(map[string]*model.CacheEntry),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (c *memoryReportCache) Get(_ context.Context, key string) (*model.CacheEntry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[key]
	if !ok || entry.Expired(c.now()) {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (c *memoryReportCache) Put(_ context.Context, key string, entry *model.CacheEntry) error {
	cp := *entry
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = &cp
	if len(c.entries) > c.maxEntries {
		c.evictExpiredLocked()
	}
	return nil
}

func (c *memoryReportCache) EvictExpired(_ context.Context) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictExpiredLocked()
}

func (c *memoryReportCache) evictExpiredLocked() int {
	now := c.now()
	evicted := 0
	for key, entry := range c.entries {
		if entry.Expired(now) {
			delete(c.entries, key)
			evicted++
		}
	}
	return evicted
}
