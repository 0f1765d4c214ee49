// Package state computes, persists, and reads back daily cognitive
// states, layering the snapshot cache over the snapshot repository.
package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xslog"
)

const DefaultCacheTTL = 6 * time.Hour

type Service struct {
	metrics   repository.DailyMetricsRepository
	snapshots repository.SnapshotRepository
	actions   repository.ActionLogRepository
	cache     storage.SnapshotCache
	baselines *baseline.Provider
	now       func() time.Time
	cacheTTL  time.Duration
}

func NewService(
	metrics repository.DailyMetricsRepository,
	snapshots repository.SnapshotRepository,
	actions repository.ActionLogRepository,
	cache storage.SnapshotCache,
	baselines *baseline.Provider,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		metrics:   metrics,
		snapshots: snapshots,
		actions:   actions,
		cache:     cache,
		baselines: baselines,
		now:       now,
		cacheTTL:  DefaultCacheTTL,
	}
}

// Insight bundles a day's state with its narrative and the default
// action-button phase.
type Insight struct {
	State             vyr.State          `json:"state"`
	Interpretation    vyr.Interpretation `json:"interpretation"`
	RecommendedAction vyr.Phase          `json:"recommended_action"`
}

// Compute scores a day from scratch: the day's synced samples are
// merged, validated, and run through the engine against the user's
// active baselines. The result is persisted as that day's snapshot.
// A day with no synced data still scores (all pillars neutral) but is
// flagged HasData false.
func (s *Service) Compute(ctx context.Context, userID, day string) (*vyr.State, error) {
	records, err := s.metrics.GetDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("reading day records: %w", err)
	}

	sample := mergedSample(records)
	baselines := s.baselines.Get(ctx, userID, day)

	pillars := vyr.ComputePillars(sample, baselines)
	score := vyr.ComputeScore(pillars)

	state := vyr.State{
		Score:          score,
		Level:          vyr.GetLevel(score),
		Pillars:        pillars,
		LimitingFactor: vyr.GetLimitingFactor(pillars),
		Phase:          vyr.PhaseAt(s.now()),
		HasData:        len(records) > 0,
	}

	if err := s.snapshots.Upsert(ctx, &repository.Snapshot{
		UserID: userID,
		Day:    day,
		State:  state,
	}); err != nil {
		return nil, fmt.Errorf("persisting snapshot: %w", err)
	}

	if err := s.cache.Set(ctx, userID, day, state, s.cacheTTL); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "snapshot cache write failed",
			xslog.Error(err), xslog.UserID(userID), xslog.Day(day))
	}

	return &state, nil
}

// Get returns a day's state, checking the cache, then the persisted
// snapshot, then computing fresh. Phase is re-derived on every read;
// only the scored values are durable.
func (s *Service) Get(ctx context.Context, userID, day string) (*vyr.State, error) {
	if cached, err := s.cache.Get(ctx, userID, day); err == nil {
		cached.Phase = vyr.PhaseAt(s.now())
		return cached, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		xslog.FromContext(ctx).WarnContext(ctx, "snapshot cache read failed",
			xslog.Error(err), xslog.UserID(userID), xslog.Day(day))
	}

	snapshot, err := s.snapshots.Get(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}
	if snapshot != nil {
		state := snapshot.State
		state.Phase = vyr.PhaseAt(s.now())
		if err := s.cache.Set(ctx, userID, day, state, s.cacheTTL); err != nil {
			xslog.FromContext(ctx).WarnContext(ctx, "snapshot cache write failed",
				xslog.Error(err), xslog.UserID(userID), xslog.Day(day))
		}
		return &state, nil
	}

	return s.Compute(ctx, userID, day)
}

// Insight returns the day's state with its full narrative and the
// recommended action for the current hour.
func (s *Service) Insight(ctx context.Context, userID, day string) (*Insight, error) {
	state, err := s.Get(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	entries, err := s.actions.ListByDay(ctx, userID, day)
	if err != nil {
		return nil, fmt.Errorf("reading action log: %w", err)
	}
	taken := make([]vyr.Phase, 0, len(entries))
	for _, entry := range entries {
		taken = append(taken, entry.Action)
	}

	hour := s.now().Hour()
	return &Insight{
		State:             *state,
		Interpretation:    vyr.Interpret(*state, hour),
		RecommendedAction: vyr.RecommendedAction(state.Pillars, state.Score, hour, taken),
	}, nil
}

// Today resolves the current day key from the service clock.
func (s *Service) Today() string {
	return s.now().Format(time.DateOnly)
}

// mergedSample collapses per-source records for one day into a single
// validated sample. Later sources override earlier ones per field.
func mergedSample(records []repository.DayRecord) vyr.BiometricSample {
	var merged vyr.BiometricSample
	for i := range records {
		sample := vyr.Validate(records[i].Sample)
		if sample.RestingHeartRate != nil {
			merged.RestingHeartRate = sample.RestingHeartRate
		}
		if sample.HRVIndex != nil {
			merged.HRVIndex = sample.HRVIndex
		}
		if sample.HRVRawMs != nil {
			merged.HRVRawMs = sample.HRVRawMs
		}
		if sample.SleepDuration != nil {
			merged.SleepDuration = sample.SleepDuration
		}
		if sample.SleepQuality != nil {
			merged.SleepQuality = sample.SleepQuality
		}
		if sample.SleepRegularity != nil {
			merged.SleepRegularity = sample.SleepRegularity
		}
		if sample.Awakenings != nil {
			merged.Awakenings = sample.Awakenings
		}
		if sample.SpO2 != nil {
			merged.SpO2 = sample.SpO2
		}
		if sample.RespiratoryRate != nil {
			merged.RespiratoryRate = sample.RespiratoryRate
		}
		if sample.StressLevel != nil {
			merged.StressLevel = sample.StressLevel
		}
		if sample.TempDeviation != nil {
			merged.TempDeviation = sample.TempDeviation
		}
		if sample.ActivityLevel != "" {
			merged.ActivityLevel = sample.ActivityLevel
		}
	}
	return merged
}
