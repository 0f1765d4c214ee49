// Package storage holds the cache layer in front of the repositories:
// computed state snapshots and derived baselines. Both have Redis and
// in-memory backends; the server wires Redis, the CLI wires memory.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

var ErrNotFound = errors.New("entry not found")

// SnapshotCache caches computed daily states keyed by (user, day).
type SnapshotCache interface {
	// Get returns the cached state for a day.
	// Returns ErrNotFound if not cached or expired.
	Get(ctx context.Context, userID, day string) (*vyr.State, error)

	Set(ctx context.Context, userID, day string, state vyr.State, ttl time.Duration) error

	// Invalidate drops the cached state, typically after a new sync
	// lands for that day.
	Invalidate(ctx context.Context, userID, day string) error
}

// BaselineCache caches derived per-user baselines so each recompute
// does not re-read fourteen days of history.
type BaselineCache interface {
	Get(ctx context.Context, userID string) (vyr.BaselineValues, error)

	Set(ctx context.Context, userID string, baselines vyr.BaselineValues, ttl time.Duration) error

	Invalidate(ctx context.Context, userID string) error
}
