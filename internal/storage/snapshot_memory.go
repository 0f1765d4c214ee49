package storage

import (
	"context"
	"sync"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

type snapshotEntry struct {
	state     vyr.State
	expiresAt time.Time
}

type MemorySnapshotCache struct {
	mu      sync.RWMutex
	entries map[string]snapshotEntry

	done     chan struct{}
	interval time.Duration
}

var _ SnapshotCache = (*MemorySnapshotCache)(nil)

func NewMemorySnapshotCache(cleanupInterval time.Duration) *MemorySnapshotCache {
	c := &MemorySnapshotCache{
		entries:  make(map[string]snapshotEntry),
		done:     make(chan struct{}),
		interval: cleanupInterval,
	}
	go c.cleanupLoop()
	return c
}

func (c *MemorySnapshotCache) Get(_ context.Context, userID, day string) (*vyr.State, error) {
	c.mu.RLock()
	entry, ok := c.entries[snapshotKey(userID, day)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrNotFound
	}
	state := entry.state
	return &state, nil
}

func (c *MemorySnapshotCache) Set(_ context.Context, userID, day string, state vyr.State, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[snapshotKey(userID, day)] = snapshotEntry{
		state:     state,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemorySnapshotCache) Invalidate(_ context.Context, userID, day string) error {
	c.mu.Lock()
	delete(c.entries, snapshotKey(userID, day))
	c.mu.Unlock()
	return nil
}

func (c *MemorySnapshotCache) cleanupLoop() {
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

func (c *MemorySnapshotCache) cleanup() {
	now := time.Now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

func (c *MemorySnapshotCache) Close() error {
	close(c.done)
	return nil
}
