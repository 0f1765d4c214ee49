package storage

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

type baselineEntry struct {
	baselines vyr.BaselineValues
	expiresAt time.Time
}

type MemoryBaselineCache struct {
	mu      sync.RWMutex
	entries map[string]baselineEntry

	done     chan struct{}
	interval time.Duration
}

var _ BaselineCache = (*MemoryBaselineCache)(nil)

func NewMemoryBaselineCache(cleanupInterval time.Duration) *MemoryBaselineCache {
	c := &MemoryBaselineCache{
		entries:  make(map[string]baselineEntry),
		done:     make(chan struct{}),
		interval: cleanupInterval,
	}
	go c.cleanupLoop()
	return c
}

func (c *MemoryBaselineCache) Get(_ context.Context, userID string) (vyr.BaselineValues, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	out := make(vyr.BaselineValues, len(entry.baselines))
	maps.Copy(out, entry.baselines)
	return out, nil
}

func (c *MemoryBaselineCache) Set(_ context.Context, userID string, baselines vyr.BaselineValues, ttl time.Duration) error {
	stored := make(vyr.BaselineValues, len(baselines))
	maps.Copy(stored, baselines)

	c.mu.Lock()
	c.entries[userID] = baselineEntry{
		baselines: stored,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryBaselineCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	delete(c.entries, userID)
	c.mu.Unlock()
	return nil
}

func (c *MemoryBaselineCache) cleanupLoop() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryBaselineCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for userID, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, userID)
		}
	}
	c.mu.Unlock()
}

func (c *MemoryBaselineCache) Close() error {
	close(c.done)
	return nil
}
