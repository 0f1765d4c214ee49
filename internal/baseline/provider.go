// Package baseline turns stored sync history into the per-metric
// (mean, std) pairs that pillar scoring normalizes against.
package baseline

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/vyr"
	"github.com/vyrlabs/vyr/internal/xslog"
	"golang.org/x/sync/errgroup"
)

const DefaultCacheTTL = time.Hour

type Provider struct {
	metrics  repository.DailyMetricsRepository
	refs     repository.PopulationRefRepository
	cache    storage.BaselineCache
	cacheTTL time.Duration
}

func NewProvider(metrics repository.DailyMetricsRepository, refs repository.PopulationRefRepository, cache storage.BaselineCache, cacheTTL time.Duration) *Provider {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}
	return &Provider{
		metrics:  metrics,
		refs:     refs,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Get returns the active baselines for a user as of the given day.
// Storage failures degrade to population or default baselines rather
// than propagating: a scoring pass must always have something to
// normalize against.
func (p *Provider) Get(ctx context.Context, userID, day string) vyr.BaselineValues {
	logger := xslog.FromContext(ctx)

	if cached, err := p.cache.Get(ctx, userID); err == nil {
		return cached
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.WarnContext(ctx, "baseline cache read failed", xslog.Error(err), xslog.UserID(userID))
	}

	fromDay, toDay := historyWindow(day)

	var (
		history []vyr.DailyMetrics
		refs    []vyr.PopulationRef
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		records, err := p.metrics.GetRange(gctx, userID, fromDay, toDay)
		if err != nil {
			logger.WarnContext(gctx, "baseline history read failed", xslog.Error(err), xslog.UserID(userID))
			return nil
		}
		history = dailyHistory(records)
		return nil
	})
	g.Go(func() error {
		rows, err := p.refs.List(gctx, nil)
		if err != nil {
			logger.WarnContext(gctx, "population reference read failed", xslog.Error(err))
			return nil
		}
		refs = rows
		return nil
	})
	_ = g.Wait()

	baselines := vyr.ComputeBaseline(history, refs)

	if err := p.cache.Set(ctx, userID, baselines, p.cacheTTL); err != nil {
		logger.WarnContext(ctx, "baseline cache write failed", xslog.Error(err), xslog.UserID(userID))
	}

	return baselines
}

// Invalidate drops the cached baselines, typically after new history
// lands.
func (p *Provider) Invalidate(ctx context.Context, userID string) {
	if err := p.cache.Invalidate(ctx, userID); err != nil {
		xslog.FromContext(ctx).WarnContext(ctx, "baseline cache invalidation failed", xslog.Error(err), xslog.UserID(userID))
	}
}

// historyWindow returns the trailing window [day-14, day-1]. The day
// being scored is excluded so it cannot feed its own baseline. A
// malformed day falls back to an empty window.
func historyWindow(day string) (string, string) {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return day, day
	}
	from := t.AddDate(0, 0, -vyr.BaselineWindowDays)
	to := t.AddDate(0, 0, -1)
	return from.Format(time.DateOnly), to.Format(time.DateOnly)
}

// dailyHistory collapses per-source day records into one DailyMetrics
// per day. Samples are validated first so clamping and HRV
// normalization apply before any aggregation; when several sources
// report the same metric on the same day, the last one by source order
// wins.
func dailyHistory(records []repository.DayRecord) []vyr.DailyMetrics {
	byDay := make(map[string]*vyr.DailyMetrics)
	for i := range records {
		record := &records[i]
		daily, ok := byDay[record.Day]
		if !ok {
			daily = &vyr.DailyMetrics{Day: record.Day}
			byDay[record.Day] = daily
		}

		sample := vyr.Validate(record.Sample)
		if sample.RestingHeartRate != nil {
			daily.RHR = sample.RestingHeartRate
		}
		if sample.HRVIndex != nil {
			daily.HRVIndex = sample.HRVIndex
		}
		if sample.SleepDuration != nil {
			daily.SleepDuration = sample.SleepDuration
		}
		if sample.SleepQuality != nil {
			daily.SleepQuality = sample.SleepQuality
		}
		if sample.SpO2 != nil {
			daily.SpO2 = sample.SpO2
		}
	}

	days := make([]vyr.DailyMetrics, 0, len(byDay))
	for _, daily := range byDay {
		days = append(days, *daily)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Day < days[j].Day })
	return days
}
