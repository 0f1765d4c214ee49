package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vyrlabs/vyr/internal/vyr"
)

func TestMemorySnapshotCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache := NewMemorySnapshotCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	if _, err := cache.Get(ctx, "u1", "2025-03-20"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty cache: err = %v, want ErrNotFound", err)
	}

	state := vyr.State{Score: 73, Level: vyr.LevelBom, HasData: true}
	if err := cache.Set(ctx, "u1", "2025-03-20", state, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(state, *got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// other days stay independent
	if _, err := cache.Get(ctx, "u1", "2025-03-21"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get other day: err = %v, want ErrNotFound", err)
	}

	if err := cache.Invalidate(ctx, "u1", "2025-03-20"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := cache.Get(ctx, "u1", "2025-03-20"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Invalidate: err = %v, want ErrNotFound", err)
	}
}

func TestMemorySnapshotCacheExpiry(t *testing.T) {
	t.Parallel()

	cache := NewMemorySnapshotCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	if err := cache.Set(ctx, "u1", "2025-03-20", vyr.State{Score: 50}, -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := cache.Get(ctx, "u1", "2025-03-20"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get expired entry: err = %v, want ErrNotFound", err)
	}
}

func TestMemoryBaselineCacheRoundTrip(t *testing.T) {
	t.Parallel()

	cache := NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	ctx := context.Background()

	if _, err := cache.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get on empty cache: err = %v, want ErrNotFound", err)
	}

	baselines := vyr.BaselineValues{vyr.MetricRHR: {Mean: 62, Std: 4}}
	if err := cache.Set(ctx, "u1", baselines, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := cache.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(baselines, got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}

	// mutating the returned map must not affect the cached copy
	got[vyr.MetricRHR] = vyr.Baseline{Mean: 0, Std: 0}
	again, err := cache.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if diff := cmp.Diff(baselines, again); diff != "" {
		t.Errorf("cached copy was mutated (-want +got):\n%s", diff)
	}

	if err := cache.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, err := cache.Get(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Invalidate: err = %v, want ErrNotFound", err)
	}
}
