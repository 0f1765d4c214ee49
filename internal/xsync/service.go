// Package xsync orchestrates device syncs: pulling readings through a
// device adapter and landing them via the ingest pipeline, one day at
// a time or as a trailing backfill.
package xsync

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vyrlabs/vyr/internal/device"
	"github.com/vyrlabs/vyr/internal/service/ingest"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xslog"
	"golang.org/x/sync/errgroup"
)

const (
	// BackfillDays is the trailing window a fresh device connection
	// pulls, sized to cover the baseline window with margin.
	BackfillDays = 2 * vyr.BaselineWindowDays

	maxSyncConcurrency = 2
)

type Service struct {
	registry *device.Registry
	ingest   *ingest.Service
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(registry *device.Registry, ingestSvc *ingest.Service, logger *slog.Logger, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		registry: registry,
		ingest:   ingestSvc,
		logger:   logger,
		now:      now,
	}
}

// SyncDay pulls one day's readings from a connected device and lands
// them, returning the recomputed state.
func (s *Service) SyncDay(ctx context.Context, userID string, model device.Model, day string) (*vyr.State, error) {
	adapter, err := s.registry.Get(model)
	if err != nil {
		return nil, err
	}

	sample, err := adapter.Sync(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("syncing %s for %s: %w", model, day, err)
	}

	return s.ingest.Sync(ctx, userID, day, string(model), sample)
}

// Backfill pulls the trailing BackfillDays window, oldest day first so
// baselines build up as later days land. Individual day failures are
// logged and skipped; the backfill keeps going.
func (s *Service) Backfill(ctx context.Context, userID string, model device.Model) error {
	adapter, err := s.registry.Get(model)
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "starting backfill", xslog.UserID(userID), xslog.Source(string(model)))

	today := s.now()
	var synced atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSyncConcurrency)
	for offset := BackfillDays; offset >= 1; offset-- {
		day := today.AddDate(0, 0, -offset).Format(time.DateOnly)
		g.Go(func() error {
			sample, err := adapter.Sync(gctx, day)
			if err != nil {
				s.logger.WarnContext(gctx, "backfill day sync failed",
					xslog.Day(day), xslog.Error(err))
				return nil
			}
			if _, err := s.ingest.Sync(gctx, userID, day, string(model), sample); err != nil {
				s.logger.WarnContext(gctx, "backfill day ingest failed",
					xslog.Day(day), xslog.Error(err))
				return nil
			}
			synced.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("backfill cancelled: %w", err)
	}

	s.logger.InfoContext(ctx, "backfill complete", xslog.UserID(userID), xslog.Count(int(synced.Load())))
	return nil
}
