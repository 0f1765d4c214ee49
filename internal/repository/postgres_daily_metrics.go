package repository

import (
	"context"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vyrlabs/vyr/internal/vyr"
)

type postgresDailyMetricsRepo struct {
	pool *pgxpool.Pool
}

var _ DailyMetricsRepository = (*postgresDailyMetricsRepo)(nil)

func (r *postgresDailyMetricsRepo) Upsert(ctx context.Context, record *DayRecord) error {
	sampleJSON, err := go_json.Marshal(record.Sample)
	if err != nil {
		return fmt.Errorf("marshaling sample: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO daily_metrics (user_id, day, source, sample_json, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id, day, source)
		DO UPDATE SET sample_json = EXCLUDED.sample_json, updated_at = now()
	`, record.UserID, record.Day, record.Source, string(sampleJSON))
	if err != nil {
		return fmt.Errorf("upserting daily metrics: %w", err)
	}
	return nil
}

func (r *postgresDailyMetricsRepo) GetDay(ctx context.Context, userID, day string) ([]DayRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, day, source, sample_json, updated_at
		FROM daily_metrics
		WHERE user_id = $1 AND day = $2
		ORDER BY source
	`, userID, day)
	if err != nil {
		return nil, fmt.Errorf("querying daily metrics: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}

func (r *postgresDailyMetricsRepo) GetRange(ctx context.Context, userID, fromDay, toDay string) ([]DayRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, day, source, sample_json, updated_at
		FROM daily_metrics
		WHERE user_id = $1 AND day >= $2 AND day <= $3
		ORDER BY day, source
	`, userID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("querying daily metrics range: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanDayRecords(rows rowScanner) ([]DayRecord, error) {
	var records []DayRecord
	for rows.Next() {
		var (
			record     DayRecord
			sampleJSON string
		)
		if err := rows.Scan(&record.UserID, &record.Day, &record.Source, &sampleJSON, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning daily metrics row: %w", err)
		}
		var sample vyr.BiometricSample
		if err := go_json.Unmarshal([]byte(sampleJSON), &sample); err != nil {
			return nil, fmt.Errorf("unmarshaling sample: %w", err)
		}
		record.Sample = sample
		records = append(records, record)
	}
	return records, rows.Err()
}
