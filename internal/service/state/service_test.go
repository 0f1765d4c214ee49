package state

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
)

func f64(v float64) *float64 { return &v }

// fixedClock pins the service to mid-morning so phase assertions are
// deterministic.
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
	return NewService(repo.DailyMetrics, repo.Snapshots, repo.Actions, snapshotCache, baselines, fixedClock), repo
}

func TestComputeNoDataIsNeutral(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	state, err := svc.Compute(context.Background(), "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if state.HasData {
		t.Error("HasData = true, want false for a day with no records")
	}
	want := vyr.PillarScore{Energia: 3, Clareza: 3, Estabilidade: 3}
	if diff := cmp.Diff(want, state.Pillars); diff != "" {
		t.Errorf("pillars mismatch (-want +got):\n%s", diff)
	}
	if state.Score != 60 {
		t.Errorf("Score = %d, want 60", state.Score)
	}
	if state.Phase != vyr.PhaseBoot {
		t.Errorf("Phase = %s, want BOOT at 09:30", state.Phase)
	}
}

func TestComputePersistsSnapshot(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	err := repo.DailyMetrics.Upsert(ctx, &repository.DayRecord{
		UserID: "u1",
		Day:    "2025-03-20",
		Source: "ring",
		Sample: vyr.BiometricSample{
			RestingHeartRate: f64(58),
			HRVRawMs:         f64(45),
			SleepDuration:    f64(7.8),
			SleepQuality:     f64(82),
		},
	})
	if err != nil {
		t.Fatalf("upserting record: %v", err)
	}

	state, err := svc.Compute(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !state.HasData {
		t.Error("HasData = false, want true")
	}

	snapshot, err := repo.Snapshots.Get(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if snapshot == nil {
		t.Fatal("snapshot not persisted")
	}
	if diff := cmp.Diff(*state, snapshot.State); diff != "" {
		t.Errorf("snapshot state mismatch (-want +got):\n%s", diff)
	}
}

func TestGetReadsPersistedSnapshot(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	stored := vyr.State{
		Score:          73,
		Level:          vyr.LevelBom,
		Pillars:        vyr.PillarScore{Energia: 4.09, Clareza: 3.98, Estabilidade: 3.41},
		LimitingFactor: vyr.PillarEstabilidade,
		Phase:          vyr.PhaseClear, // stale; must be re-derived on read
		HasData:        true,
	}
	err := repo.Snapshots.Upsert(ctx, &repository.Snapshot{
		UserID: "u1",
		Day:    "2025-03-20",
		State:  stored,
	})
	if err != nil {
		t.Fatalf("upserting snapshot: %v", err)
	}

	got, err := svc.Get(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	want := stored
	want.Phase = vyr.PhaseBoot
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}

	// second read comes from the cache and must agree
	again, err := svc.Get(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Get (cached): %v", err)
	}
	if diff := cmp.Diff(*got, *again); diff != "" {
		t.Errorf("cached state mismatch (-want +got):\n%s", diff)
	}
}

func TestGetComputesWhenNothingStored(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)

	got, err := svc.Get(context.Background(), "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Score != 60 || got.HasData {
		t.Errorf("got score=%d hasData=%v, want neutral 60 with no data", got.Score, got.HasData)
	}
}

func TestInsightIncludesRecommendedAction(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(t)
	ctx := context.Background()

	insight, err := svc.Insight(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}

	// neutral day at 09:30: BOOT thresholds miss (energia 3 < 3.5),
	// nothing taken, so the fallback suggests HOLD
	if insight.RecommendedAction != vyr.PhaseHold {
		t.Errorf("RecommendedAction = %s, want HOLD", insight.RecommendedAction)
	}
	if insight.Interpretation.Sentiment != vyr.SentimentInsight {
		t.Errorf("Sentiment = %s, want insight for score 60", insight.Interpretation.Sentiment)
	}

	// once CLEAR is the only un-taken phase left, it wins
	for _, phase := range []vyr.Phase{vyr.PhaseBoot, vyr.PhaseHold} {
		err := repo.Actions.Append(ctx, &repository.ActionEntry{
			UserID: "u1",
			Day:    "2025-03-20",
			Action: phase,
		})
		if err != nil {
			t.Fatalf("appending action: %v", err)
		}
	}

	insight, err = svc.Insight(ctx, "u1", "2025-03-20")
	if err != nil {
		t.Fatalf("Insight: %v", err)
	}
	if insight.RecommendedAction != vyr.PhaseClear {
		t.Errorf("RecommendedAction = %s, want CLEAR after BOOT and HOLD taken", insight.RecommendedAction)
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(t)
	if got := svc.Today(); got != "2025-03-20" {
		t.Errorf("Today() = %q, want 2025-03-20", got)
	}
}
