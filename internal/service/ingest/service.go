// Package ingest lands synced biometric samples and keeps derived
// state consistent: each accepted sample invalidates the user's cached
// baselines and triggers a recompute of the affected day.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xslog"
)

const SourceManual = "manual"

type Service struct {
	metrics   repository.DailyMetricsRepository
	baselines *baseline.Provider
	snapshots storage.SnapshotCache
	states    *state.Service
	now       func() time.Time
}

func NewService(
	metrics repository.DailyMetricsRepository,
	baselines *baseline.Provider,
	snapshots storage.SnapshotCache,
	states *state.Service,
	now func() time.Time,
) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		metrics:   metrics,
		baselines: baselines,
		snapshots: snapshots,
		states:    states,
		now:       now,
	}
}

// Sync stores one source's sample for a day and returns the freshly
// recomputed state. The raw sample is stored as-is; validation and
// clamping happen at scoring time so raw readings are never lost.
func (s *Service) Sync(ctx context.Context, userID, day, source string, sample vyr.BiometricSample) (*vyr.State, error) {
	if day == "" {
		day = s.now().Format(time.DateOnly)
	}
	if source == "" {
		source = SourceManual
	}
	if _, err := time.Parse(time.DateOnly, day); err != nil {
		return nil, fmt.Errorf("parsing day %q: %w", day, err)
	}

	if err := s.metrics.Upsert(ctx, &repository.DayRecord{
		UserID: userID,
		Day:    day,
		Source: source,
		Sample: sample,
	}); err != nil {
		return nil, fmt.Errorf("storing sample: %w", err)
	}

	s.baselines.Invalidate(ctx, userID)
	if err := s.snapshots.Invalidate(ctx, userID, day); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "snapshot cache invalidation failed",
			xslog.Error(err), xslog.UserID(userID), xslog.Day(day))
	}

	return s.states.Compute(ctx, userID, day)
}
