package main

import (
	"context"
	"database/sql"
	"time"

	"github.com/vyrlabs/vyr/internal/baseline"
	"github.com/vyrlabs/vyr/internal/db"
	"github.com/vyrlabs/vyr/internal/device"
	"github.com/vyrlabs/vyr/internal/paths"
	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/service/action"
	"github.com/vyrlabs/vyr/internal/service/ingest"
	"github.com/vyrlabs/vyr/internal/service/state"
	"github.com/vyrlabs/vyr/internal/storage"
	"github.com/vyrlabs/vyr/internal/xslog"
	"github.com/vyrlabs/vyr/internal/xsync"
)

// localUserID identifies the single local user in CLI mode; the
// multi-user surface only exists behind the server.
const localUserID = "local"

const cacheCleanupInterval = 5 * time.Minute

// deps wires the full local stack: sqlite storage, in-memory caches,
// and simulated device adapters.
type deps struct {
	sqlDB     *sql.DB
	repo      *repository.Repository
	states    *state.Service
	ingest    *ingest.Service
	actions   *action.Service
	syncer    *xsync.Service
	registry  *device.Registry
	snapshots *storage.MemorySnapshotCache
	baselines *storage.MemoryBaselineCache
}

func openDeps(ctx context.Context) (*deps, error) {
	if _, err := paths.EnsureDir(); err != nil {
		return nil, err
	}
	dbPath, err := paths.DB()
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.Open(ctx, dbPath)
	if err != nil {
		return nil, err
	}

	repo := repository.NewSQLite(sqlDB)
	snapshotCache := storage.NewMemorySnapshotCache(cacheCleanupInterval)
	baselineCache := storage.NewMemoryBaselineCache(cacheCleanupInterval)

	baselines := baseline.NewProvider(repo.DailyMetrics, repo.PopulationRefs, baselineCache, baseline.DefaultCacheTTL)
	states := state.NewService(repo.DailyMetrics, repo.Snapshots, repo.Actions, snapshotCache, baselines, nil)
	ingestSvc := ingest.NewService(repo.DailyMetrics, baselines, snapshotCache, states, nil)
	actions := action.NewService(repo.Actions, nil)

	registry := device.NewRegistry(
		device.NewSimAdapter(device.ModelRing),
		device.NewSimAdapter(device.ModelBand),
	)
	syncer := xsync.NewService(registry, ingestSvc, xslog.FromContext(ctx), nil)

	return &deps{
		sqlDB:     sqlDB,
		repo:      repo,
		states:    states,
		ingest:    ingestSvc,
		actions:   actions,
		syncer:    syncer,
		registry:  registry,
		snapshots: snapshotCache,
		baselines: baselineCache,
	}, nil
}

func (d *deps) Close() {
	_ = d.snapshots.Close()
	_ = d.baselines.Close()
	_ = d.sqlDB.Close()
}
