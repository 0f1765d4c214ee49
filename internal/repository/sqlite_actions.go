package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	go_json "github.com/goccy/go-json"
	"github.com/vyrlabs/vyr/internal/vyr"
)

type sqliteActionLogRepo struct {
	db *sql.DB
}

var _ ActionLogRepository = (*sqliteActionLogRepo)(nil)

func (r *sqliteActionLogRepo) Append(ctx context.Context, entry *ActionEntry) error {
	payloadJSON, err := go_json.Marshal(actionPayload{Transition: entry.Transition})
	if err != nil {
		return fmt.Errorf("marshaling action payload: %w", err)
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO action_log (user_id, day, action_type, payload_json, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, entry.UserID, entry.Day, string(entry.Action), string(payloadJSON), now)
	if err != nil {
		return fmt.Errorf("appending action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading inserted action id: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = now
	return nil
}

func (r *sqliteActionLogRepo) ListByDay(ctx context.Context, userID, day string) ([]ActionEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, day, action_type, payload_json, created_at
		FROM action_log
		WHERE user_id = ? AND day = ?
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
