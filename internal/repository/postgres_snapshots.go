package repository

import (
	"context"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresSnapshotRepo struct {
	pool *pgxpool.Pool
}

var _ SnapshotRepository = (*postgresSnapshotRepo)(nil)

func (r *postgresSnapshotRepo) Upsert(ctx context.Context, snapshot *Snapshot) error {
	pillarsJSON, err := go_json.Marshal(snapshot.State.Pillars)
	if err != nil {
		return fmt.Errorf("marshaling pillars: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO state_snapshots (user_id, day, score, level, pillars_json, limiting_factor, phase, has_data, computed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())
		ON CONFLICT (user_id, day)
		DO UPDATE SET
			score = EXCLUDED.score,
			level = EXCLUDED.level,
			pillars_json = EXCLUDED.pillars_json,
			limiting_factor = EXCLUDED.limiting_factor,
			phase = EXCLUDED.phase,
			has_data = EXCLUDED.has_data,
			computed_at = now()
	`, snapshot.UserID, snapshot.Day, snapshot.State.Score, string(snapshot.State.Level),
		string(pillarsJSON), string(snapshot.State.LimitingFactor), string(snapshot.State.Phase), snapshot.State.HasData)
	if err != nil {
		return fmt.Errorf("upserting snapshot: %w", err)
	}
	return nil
}

func (r *postgresSnapshotRepo) Get(ctx context.Context, userID, day string) (*Snapshot, error) {
	var (
		snapshot    Snapshot
		pillarsJSON string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT user_id, day, score, level, pillars_json, limiting_factor, phase, has_data, computed_at
		FROM state_snapshots
		WHERE user_id = $1 AND day = $2
	`, userID, day).Scan(&snapshot.UserID, &snapshot.Day, &snapshot.State.Score, &snapshot.State.Level,
		&pillarsJSON, &snapshot.State.LimitingFactor, &snapshot.State.Phase, &snapshot.State.HasData, &snapshot.ComputedAt)
	if errors.Is(err, pgx.ErrNoRows) {
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
