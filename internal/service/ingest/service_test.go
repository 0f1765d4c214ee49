package ingest

import (
	"context"
	"testing"
	"time"

	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
)

func f64(v float64) *float64 { return &v }

func fixedClock() time.Time {
	return time.Date(2025, 3, 20, 9, 30, 0, 0, time.UTC)
}

func newTestService(t *testing.T) (*Service, *repository.Repository) {
	t.Helper()

	repo := repository.NewMemory()
	snapshotCache := storage.NewMemorySnapshotCache(time.Minute)
	baselineCache := storage.NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() {
		_ = snapshotCache.Close()
		_ = baselineCache.Close()
	})

	baselines := baseline.NewProvider(repo.DailyMetrics, repo.PopulationRefs, baselineCache, time.Minute)
	states := state.NewService(repo.DailyMetrics, repo.Snapshots, repo.Actions, snapshotCache, baselines, fixedClock)
	return NewService(repo.DailyMetrics, baselines, snapshotCache, states, fixedClock), repo
}

func TestSyncStoresAndRecomputes(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	sample := vyr.BiometricSample{
		RestingHeartRate: f64(58),
		HRVRawMs:         f64(45),
		SleepDuration:    f64(7.8),
	}

	got, err := svc.Sync(ctx, "u1", "2025-03-20", "ring", sample)
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}
	if !got.HasData {
		t.Error("HasData = false after sync")
	}

	records, err := repo.DailyMetrics.GetDay(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("reading records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Source != "ring" {
		t.Errorf("Source = %q, want ring", records[0].Source)
	}

	snapshot, err := repo.Snapshots.Get(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if snapshot == nil {
		t.Fatal("snapshot not persisted after sync")
	}
	if snapshot.State.Score != got.Score {
		t.Errorf("snapshot score = %d, returned score = %d", snapshot.State.Score, got.Score)
	}
}

func TestSyncDefaultsDayAndSource(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	_, err := svc.Sync(ctx, "u1", "", "", vyr.BiometricSample{RestingHeartRate: f64(60)})
	if err != nil {
		t.Fatalf("Sync: %v", err)
	}

	records, err := repo.DailyMetrics.GetDay(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("reading records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}
	if records[0].Source != SourceManual {
		t.Errorf("Source = %q, want %q", records[0].Source, SourceManual)
	}
}

func TestSyncRejectsMalformedDay(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	if _, err := svc.Sync(context.Background(), "u1", "20-03-2025", "ring", vyr.BiometricSample{RestingHeartRate: f64(60)}); err == nil {
		t.Error("Sync accepted a malformed day")
	}
}

func TestSyncReplacesSameSourceSameDay(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Sync(ctx, "u1", "2025-03-20", "ring", vyr.BiometricSample{RestingHeartRate: f64(70)}); err != nil {
		t.Fatalf("first Sync: %v", err)
	}
	if _, err := svc.Sync(ctx, "u1", "2025-03-20", "ring", vyr.BiometricSample{RestingHeartRate: f64(58)}); err != nil {
		t.Fatalf("second Sync: %v", err)
	}

	records, err := repo.DailyMetrics.GetDay(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("reading records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1 after re-sync", len(records))
	}
	if got := *records[0].Sample.RestingHeartRate; got != 58 {
		t.Errorf("RestingHeartRate = %v, want 58", got)
	}
}
