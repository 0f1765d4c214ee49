// Package action manages the per-day log of phases the user confirmed
// taking.
package action

import (
	"context"
	"fmt"
	"time"

	"github.com/vyrlabs/vyr/internal/repository"
	"github.com/vyrlabs/vyr/internal/vyr"
)

type Service struct {
	actions repository.ActionLogRepository
	now     func() time.Time
}

func NewService(actions repository.ActionLogRepository, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{actions: actions, now: now}
}

// Record appends a taken phase to today's log. Duplicate phases are
// allowed; RecommendedAction treats a phase as taken if it appears at
// least once.
func (s *Service) Record(ctx context.Context, userID string, phase vyr.Phase, transition bool) (*repository.ActionEntry, error) {
	switch phase {
	case vyr.PhaseBoot, vyr.PhaseHold, vyr.PhaseClear:
	default:
		return nil, fmt.Errorf("unknown phase %q", phase)
	}

	entry := &repository.ActionEntry{
		UserID:     userID,
		Day:        s.now().Format(time.DateOnly),
		Action:     phase,
		Transition: transition,
	}
	if err := s.actions.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("appending action: %w", err)
	}
	return entry, nil
}

// ListToday returns today's log in append order.
func (s *Service) ListToday(ctx context.Context, userID string) ([]repository.ActionEntry, error) {
	return s.actions.ListByDay(ctx, userID, s.now().Format(time.DateOnly))
}
