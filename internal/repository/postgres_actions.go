package repository

import (
	"context"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vyrlabs/vyr/internal/vyr"
)

type postgresActionLogRepo struct {
	pool *pgxpool.Pool
}

var _ ActionLogRepository = (*postgresActionLogRepo)(nil)

type actionPayload struct {
	Transition bool `json:"transition,omitempty"`
}

func (r *postgresActionLogRepo) Append(ctx context.Context, entry *ActionEntry) error {
	payloadJSON, err := go_json.Marshal(actionPayload{Transition: entry.Transition})
	if err != nil {
		return fmt.Errorf("marshaling action payload: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO action_log (user_id, day, action_type, payload_json, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, created_at
	`, entry.UserID, entry.Day, string(entry.Action), string(payloadJSON)).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("appending action: %w", err)
	}
	return nil
}

func (r *postgresActionLogRepo) ListByDay(ctx context.Context, userID, day string) ([]ActionEntry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, day, action_type, payload_json, created_at
		FROM action_log
		WHERE user_id = $1 AND day = $2
		ORDER BY id
	`, userID, day)
	if err != nil {
		return nil, fmt.Errorf("querying action log: %w", err)
	}
	defer rows.Close()

	var entries []ActionEntry
	for rows.Next() {
		var (
			entry       ActionEntry
			actionType  string
			payloadJSON *string
		)
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Day, &actionType, &payloadJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning action row: %w", err)
		}
		entry.Action = vyr.Phase(actionType)
		if payloadJSON != nil {
			var payload actionPayload
			if err := go_json.Unmarshal([]byte(*payloadJSON), &payload); err != nil {
				return nil, fmt.Errorf("unmarshaling action payload: %w", err)
			}
			entry.Transition = payload.Transition
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
