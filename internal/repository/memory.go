package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

// NewMemory builds a fully in-memory repository bundle. Used by tests
// and anywhere a throwaway store is enough.
func NewMemory() *Repository {
	return &Repository{
		DailyMetrics:   &memoryDailyMetricsRepo{records: make(map[string]DayRecord)},
		Actions:        &memoryActionLogRepo{},
		PopulationRefs: &memoryPopulationRefRepo{},
		Snapshots:      &memorySnapshotRepo{snapshots: make(map[string]Snapshot)},
	}
}

type memoryDailyMetricsRepo struct {
	mu      sync.RWMutex
	records map[string]DayRecord
}

var _ DailyMetricsRepository = (*memoryDailyMetricsRepo)(nil)

func metricsKey(userID, day, source string) string {
	return userID + "|" + day + "|" + source
}

func (r *memoryDailyMetricsRepo) Upsert(_ context.Context, record *DayRecord) error {
	stored := *record
	stored.UpdatedAt = time.Now()

	r.mu.Lock()
	r.records[metricsKey(record.UserID, record.Day, record.Source)] = stored
	r.mu.Unlock()
	return nil
}

func (r *memoryDailyMetricsRepo) GetDay(_ context.Context, userID, day string) ([]DayRecord, error) {
	return r.collect(func(rec *DayRecord) bool {
		return rec.UserID == userID && rec.Day == day
	}), nil
}

func (r *memoryDailyMetricsRepo) GetRange(_ context.Context, userID, fromDay, toDay string) ([]DayRecord, error) {
	return r.collect(func(rec *DayRecord) bool {
		return rec.UserID == userID && rec.Day >= fromDay && rec.Day <= toDay
	}), nil
}

func (r *memoryDailyMetricsRepo) collect(keep func(*DayRecord) bool) []DayRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []DayRecord
	for _, rec := range r.records {
		if keep(&rec) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Source < out[j].Source
	})
	return out
}

type memoryActionLogRepo struct {
	mu      sync.Mutex
	entries []ActionEntry
	nextID  int64
}

var _ ActionLogRepository = (*memoryActionLogRepo)(nil)

func (r *memoryActionLogRepo) Append(_ context.Context, entry *ActionEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memoryActionLogRepo) ListByDay(_ context.Context, userID, day string) ([]ActionEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []ActionEntry
	for _, entry := range r.entries {
		if entry.UserID == userID && entry.Day == day {
			out = append(out, entry)
		}
	}
	return out, nil
}

type memoryPopulationRefRepo struct {
	mu   sync.RWMutex
	refs []vyr.PopulationRef
}

var _ PopulationRefRepository = (*memoryPopulationRefRepo)(nil)

func (r *memoryPopulationRefRepo) List(_ context.Context, _ *Demographic) ([]vyr.PopulationRef, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vyr.PopulationRef, len(r.refs))
	copy(out, r.refs)
	return out, nil
}

func (r *memoryPopulationRefRepo) Insert(_ context.Context, ref vyr.PopulationRef, _ *Demographic) error {
	r.mu.Lock()
	r.refs = append(r.refs, ref)
	r.mu.Unlock()
	return nil
}

type memorySnapshotRepo struct {
	mu        sync.RWMutex
	snapshots map[string]Snapshot
}

var _ SnapshotRepository = (*memorySnapshotRepo)(nil)

func snapshotMapKey(userID, day string) string {
	return userID + "|" + day
}

func (r *memorySnapshotRepo) Upsert(_ context.Context, snapshot *Snapshot) error {
	stored := *snapshot
	stored.ComputedAt = time.Now()

	r.mu.Lock()
	r.snapshots[snapshotMapKey(snapshot.UserID, snapshot.Day)] = stored
	r.mu.Unlock()
	return nil
}

func (r *memorySnapshotRepo) Get(_ context.Context, userID, day string) (*Snapshot, error) {
	r.mu.RLock()
	snapshot, ok := r.snapshots[snapshotMapKey(userID, day)]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	return &snapshot, nil
}
