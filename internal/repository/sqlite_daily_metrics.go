package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

type sqliteDailyMetricsRepo struct {
	db *sql.DB
}

var _ DailyMetricsRepository = (*sqliteDailyMetricsRepo)(nil)

func (r *sqliteDailyMetricsRepo) Upsert(ctx context.Context, record *DayRecord) error {
	sampleJSON, err := go_json.Marshal(record.Sample)
	if err != nil {
		return fmt.Errorf("marshaling sample: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO daily_metrics (user_id, day, source, sample_json, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day, source)
		DO UPDATE SET sample_json = excluded.sample_json, updated_at = excluded.updated_at
	`, record.UserID, record.Day, record.Source, string(sampleJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting daily metrics: %w", err)
	}
	return nil
}

func (r *sqliteDailyMetricsRepo) GetDay(ctx context.Context, userID, day string) ([]DayRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, day, source, sample_json, updated_at
		FROM daily_metrics
		WHERE user_id = ? AND day = ?
		ORDER BY source
	`, userID, day)
	if err != nil {
		return nil, fmt.Errorf("querying daily metrics: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}

func (r *sqliteDailyMetricsRepo) GetRange(ctx context.Context, userID, fromDay, toDay string) ([]DayRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, day, source, sample_json, updated_at
		FROM daily_metrics
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day, source
	`, userID, fromDay, toDay)
	if err != nil {
		return nil, fmt.Errorf("querying daily metrics range: %w", err)
	}
	defer rows.Close()

	return scanDayRecords(rows)
}
