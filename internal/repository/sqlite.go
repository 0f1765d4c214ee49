package repository

import (
	"database/sql"
)

// NewSQLite builds the repository bundle on a local sqlite handle,
// used by the CLI when no server is configured.
func NewSQLite(db *sql.DB) *Repository {
	return &Repository{
		DailyMetrics:   &sqliteDailyMetricsRepo{db: db},
		Actions:        &sqliteActionLogRepo{db: db},
		PopulationRefs: &sqlitePopulationRefRepo{db: db},
		Snapshots:      &sqliteSnapshotRepo{db: db},
	}
}
