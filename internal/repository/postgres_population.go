package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vyrlabs/vyr/internal/vyr"
)

type postgresPopulationRefRepo struct {
	pool *pgxpool.Pool
}

var _ PopulationRefRepository = (*postgresPopulationRefRepo)(nil)

func (r *postgresPopulationRefRepo) List(ctx context.Context, demo *Demographic) ([]vyr.PopulationRef, error) {
	query := `
		SELECT metric, range_min, range_max
		FROM population_reference
		WHERE sex IS NULL AND age_min IS NULL
	`
	args := []any{}
	if demo != nil {
		query = `
			SELECT metric, range_min, range_max
			FROM population_reference
			WHERE (sex IS NULL OR sex = $1)
			  AND (age_min IS NULL OR (age_min <= $2 AND age_max >= $2))
		`
		args = []any{demo.Sex, demo.Age}
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying population references: %w", err)
	}
	defer rows.Close()

	var refs []vyr.PopulationRef
	for rows.Next() {
		var ref vyr.PopulationRef
		if err := rows.Scan(&ref.Metric, &ref.RangeMin, &ref.RangeMax); err != nil {
			return nil, fmt.Errorf("scanning population reference row: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

func (r *postgresPopulationRefRepo) Insert(ctx context.Context, ref vyr.PopulationRef, demo *Demographic) error {
	var (
		sex            *string
		ageMin, ageMax *int
	)
	if demo != nil {
		sex = &demo.Sex
		ageMin = &demo.Age
		ageMax = &demo.Age
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO population_reference (metric, sex, age_min, age_max, range_min, range_max)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, string(ref.Metric), sex, ageMin, ageMax, ref.RangeMin, ref.RangeMax)
	if err != nil {
		return fmt.Errorf("inserting population reference: %w", err)
	}
	return nil
}
