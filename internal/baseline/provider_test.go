package baseline

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
)

func f64(v float64) *float64 { return &v }

func newTestProvider(t *testing.T) (*Provider, *repository.Repository) {
	t.Helper()

	repo := repository.NewMemory()
	cache := storage.NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })

	return NewProvider(repo.DailyMetrics, repo.PopulationRefs, cache, time.Minute), repo
}

func TestGetNoHistoryFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	provider, _ := newTestProvider(t)

	got := provider.Get(context.Background(), "u1", "2025-03-20")
	if diff := cmp.Diff(vyr.DefaultBaselines(), got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetPopulationRefsOverrideDefaults(t *testing.T) {
	t.Parallel()

	provider, repo := newTestProvider(t)
	ctx := context.Background()

	err := repo.PopulationRefs.Insert(ctx, vyr.PopulationRef{
		Metric:   vyr.MetricRHR,
		RangeMin: 55,
		RangeMax: 75,
	}, nil)
	if err != nil {
		t.Fatalf("inserting ref: %v", err)
	}

	got := provider.Get(ctx, "u1", "2025-03-20")

	want := vyr.DefaultBaselines()
	want[vyr.MetricRHR] = vyr.Baseline{Mean: 65, Std: 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetPersonalHistoryWins(t *testing.T) {
	t.Parallel()

	provider, repo := newTestProvider(t)
	ctx := context.Background()

	days := map[string]float64{
		"2025-03-17": 60,
		"2025-03-18": 62,
		"2025-03-19": 64,
	}
	for day, rhr := range days {
		err := repo.DailyMetrics.Upsert(ctx, &repository.DayRecord{
			UserID: "u1",
			Day:    day,
			Source: "ring",
			Sample: vyr.BiometricSample{RestingHeartRate: f64(rhr)},
		})
		if err != nil {
			t.Fatalf("upserting day %s: %v", day, err)
		}
	}

	got := provider.Get(ctx, "u1", "2025-03-20")

	want := vyr.BaselineValues{
		vyr.MetricRHR: {Mean: 62, Std: math.Sqrt(8.0 / 3.0)},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetExcludesTargetDayFromHistory(t *testing.T) {
	t.Parallel()

	provider, repo := newTestProvider(t)
	ctx := context.Background()

	// two days inside the window plus the target day itself: the
	// target day must not count toward the three-day minimum
	for _, day := range []string{"2025-03-18", "2025-03-19", "2025-03-20"} {
		err := repo.DailyMetrics.Upsert(ctx, &repository.DayRecord{
			UserID: "u1",
			Day:    day,
			Source: "ring",
			Sample: vyr.BiometricSample{RestingHeartRate: f64(60)},
		})
		if err != nil {
			t.Fatalf("upserting day %s: %v", day, err)
		}
	}

	got := provider.Get(ctx, "u1", "2025-03-20")
	if diff := cmp.Diff(vyr.DefaultBaselines(), got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetUsesCachedBaselines(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemory()
	cache := storage.NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	provider := NewProvider(repo.DailyMetrics, repo.PopulationRefs, cache, time.Minute)

	ctx := context.Background()
	cached := vyr.BaselineValues{vyr.MetricRHR: {Mean: 50, Std: 3}}
	if err := cache.Set(ctx, "u1", cached, time.Minute); err != nil {
		t.Fatalf("priming cache: %v", err)
	}

	got := provider.Get(ctx, "u1", "2025-03-20")
	if diff := cmp.Diff(cached, got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}

	provider.Invalidate(ctx, "u1")

	got = provider.Get(ctx, "u1", "2025-03-20")
	if diff := cmp.Diff(vyr.DefaultBaselines(), got); diff != "" {
		t.Errorf("baselines after invalidation mismatch (-want +got):\n%s", diff)
	}
}

type failingMetricsRepo struct{}

func (failingMetricsRepo) Upsert(context.Context, *repository.DayRecord) error {
	return errors.New("metrics store down")
}

func (failingMetricsRepo) GetDay(context.Context, string, string) ([]repository.DayRecord, error) {
	return nil, errors.New("metrics store down")
}

func (failingMetricsRepo) GetRange(context.Context, string, string, string) ([]repository.DayRecord, error) {
	return nil, errors.New("metrics store down")
}

type failingRefsRepo struct{}

func (failingRefsRepo) List(context.Context, *repository.Demographic) ([]vyr.PopulationRef, error) {
	return nil, errors.New("refs store down")
}

func (failingRefsRepo) Insert(context.Context, vyr.PopulationRef, *repository.Demographic) error {
	return errors.New("refs store down")
}

func TestGetDegradesToDefaultsWhenStorageFails(t *testing.T) {
	t.Parallel()

	cache := storage.NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	provider := NewProvider(failingMetricsRepo{}, failingRefsRepo{}, cache, time.Minute)

	got := provider.Get(context.Background(), "u1", "2025-03-20")
	if diff := cmp.Diff(vyr.DefaultBaselines(), got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}

func TestGetDegradesToRefsWhenHistoryReadFails(t *testing.T) {
	t.Parallel()

	repo := repository.NewMemory()
	cache := storage.NewMemoryBaselineCache(time.Minute)
	t.Cleanup(func() { _ = cache.Close() })
	provider := NewProvider(failingMetricsRepo{}, repo.PopulationRefs, cache, time.Minute)

	ctx := context.Background()
	err := repo.PopulationRefs.Insert(ctx, vyr.PopulationRef{
		Metric:   vyr.MetricRHR,
		RangeMin: 55,
		RangeMax: 75,
	}, nil)
	if err != nil {
		t.Fatalf("inserting ref: %v", err)
	}

	got := provider.Get(ctx, "u1", "2025-03-20")

	want := vyr.DefaultBaselines()
	want[vyr.MetricRHR] = vyr.Baseline{Mean: 65, Std: 5}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("baselines mismatch (-want +got):\n%s", diff)
	}
}
