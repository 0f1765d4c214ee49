// Package repository persists day-keyed records: synced biometric
// samples, the append-only action log, population reference bands,
// and computed state snapshots. Two backends exist: PostgreSQL for
// the hosted service and sqlite for the local single-user store.
package repository

import (
	"context"
	"time"

	"github.com/vyrlabs/vyr/internal/vyr"
)

type Repository struct {
	DailyMetrics   DailyMetricsRepository
	Actions        ActionLogRepository
	PopulationRefs PopulationRefRepository
	Snapshots      SnapshotRepository
}

// DayRecord is one source's synced sample for one (user, day). Day
// keys are YYYY-MM-DD strings already resolved to the user's locale;
// the store does no timezone handling of its own.
type DayRecord struct {
	UserID    string
	Day       string
	Source    string
	Sample    vyr.BiometricSample
	UpdatedAt time.Time
}

// ActionEntry records that the user confirmed taking a phase. The log
// is append-only per day.
type ActionEntry struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	Day        string    `json:"day"`
	Action     vyr.Phase `json:"action"`
	Transition bool      `json:"transition,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Demographic optionally narrows population reference lookups.
type Demographic struct {
	Sex string
	Age int
}

// Snapshot is one day's immutable computed state.
type Snapshot struct {
	UserID     string
	Day        string
	State      vyr.State
	ComputedAt time.Time
}

type DailyMetricsRepository interface {
	Upsert(ctx context.Context, record *DayRecord) error
	GetDay(ctx context.Context, userID, day string) ([]DayRecord, error)
	GetRange(ctx context.Context, userID, fromDay, toDay string) ([]DayRecord, error)
}

type ActionLogRepository interface {
	Append(ctx context.Context, entry *ActionEntry) error
	ListByDay(ctx context.Context, userID, day string) ([]ActionEntry, error)
}

type PopulationRefRepository interface {
	List(ctx context.Context, demo *Demographic) ([]vyr.PopulationRef, error)
	Insert(ctx context.Context, ref vyr.PopulationRef, demo *Demographic) error
}

type SnapshotRepository interface {
	Upsert(ctx context.Context, snapshot *Snapshot) error
	Get(ctx context.Context, userID, day string) (*Snapshot, error)
}
