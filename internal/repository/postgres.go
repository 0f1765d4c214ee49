package repository

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewPostgres builds the repository bundle on a shared pgx pool.
func NewPostgres(pool *pgxpool.Pool) *Repository {
	return &Repository{
		DailyMetrics:   &postgresDailyMetricsRepo{pool: pool},
		Actions:        &postgresActionLogRepo{pool: pool},
		PopulationRefs: &postgresPopulationRefRepo{pool: pool},
		Snapshots:      &postgresSnapshotRepo{pool: pool},
	}
}
