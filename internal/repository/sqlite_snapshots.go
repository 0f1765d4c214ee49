package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
)

type sqliteSnapshotRepo struct {
	db *sql.DB
}

var _ SnapshotRepository = (*sqliteSnapshotRepo)(nil)

func (r *sqliteSnapshotRepo) Upsert(ctx context.Context, snapshot *Snapshot) error {
	pillarsJSON, err := go_json.Marshal(snapshot.State.Pillars)
	if err != nil {
		return fmt.Errorf("marshaling pillars: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO state_snapshots (user_id, day, score, level, pillars_json, limiting_factor, phase, has_data, computed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, day)
		DO UPDATE SET
			score = excluded.score,
			level = excluded.level,
			pillars_json = excluded.pillars_json,
			limiting_factor = excluded.limiting_factor,
			phase = excluded.phase,
			has_data = excluded.has_data,
			computed_at = excluded.computed_at
	`, snapshot.UserID, snapshot.Day, snapshot.State.Score, string(snapshot.State.Level),
		string(pillarsJSON), string(snapshot.State.LimitingFactor), string(snapshot.State.Phase),
		snapshot.State.HasData, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}
	return nil
}

func (r *sqliteSnapshotRepo) Get(ctx context.Context, userID, day string) (*Snapshot, error) {
	var (
		snapshot    Snapshot
		pillarsJSON string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT user_id, day, score, level, pillars_json, limiting_factor, phase, has_data, computed_at
		FROM state_snapshots
		WHERE user_id = ? AND day = ?
	`, userID, day).Scan(&snapshot.UserID, &snapshot.Day, &snapshot.State.Score, &snapshot.State.Level,
		&pillarsJSON, &snapshot.State.LimitingFactor, &snapshot.State.Phase, &snapshot.State.HasData, &snapshot.ComputedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying snapshot: %w", err)
	}

	if err := go_json.Unmarshal([]byte(pillarsJSON), &snapshot.State.Pillars); err != nil {
		return nil, fmt.Errorf("unmarshaling pillars: %w", err)
	}
	return &snapshot, nil
}
