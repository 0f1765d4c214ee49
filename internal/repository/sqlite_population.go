package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/vyrlabs/vyr/internal/vyr"
)

type sqlitePopulationRefRepo struct {
	db *sql.DB
}

var _ PopulationRefRepository = (*sqlitePopulationRefRepo)(nil)

func (r *sqlitePopulationRefRepo) List(ctx context.Context, demo *Demographic) ([]vyr.PopulationRef, error) {
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
			WHERE (sex IS NULL OR sex = ?1)
			  AND (age_min IS NULL OR (age_min <= ?2 AND age_max >= ?2))
		`
		args = []any{demo.Sex, demo.Age}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
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

func (r *sqlitePopulationRefRepo) Insert(ctx context.Context, ref vyr.PopulationRef, demo *Demographic) error {
	var (
		sex            *string
		ageMin, ageMax *int
	)
	if demo != nil {
		sex = &demo.Sex
		ageMin = &demo.Age
		ageMax = &demo.Age
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO population_reference (metric, sex, age_min, age_max, range_min, range_max)
		VALUES (?, ?, ?, ?, ?, ?)
	`, string(ref.Metric), sex, ageMin, ageMax, ref.RangeMin, ref.RangeMax)
	if err != nil {
		return fmt.Errorf("inserting population reference: %w", err)
	}
	return nil
}
