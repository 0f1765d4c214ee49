package vyr

import "time"

// Daily phase windows, by local wall-clock hour.
const (
	bootStartHour  = 5
	holdStartHour  = 11
	clearStartHour = 17
	nightStartHour = 22
)

// PhaseAt returns the phase owning the given wall-clock time:
// BOOT for hours [5, 11), HOLD for [11, 17), CLEAR otherwise.
func PhaseAt(t time.Time) Phase {
	return phaseForHour(t.Hour())
}

// CurrentPhase evaluates PhaseAt against the current wall clock. Phase
// is never persisted; it is re-derived on every read and can change
// mid-session.
func CurrentPhase() Phase {
	return PhaseAt(time.Now())
}

func phaseForHour(hour int) Phase {
	switch {
	case hour >= bootStartHour && hour < holdStartHour:
		return PhaseBoot
	case hour >= holdStartHour && hour < clearStartHour:
		return PhaseHold
	default:
		return PhaseClear
	}
}

// SuggestedTransition proposes the next phase for the suggestion card,
// or nil when no transition applies. This rule set deliberately
// differs from RecommendedAction; the two are separate product
// surfaces and may disagree for the same state.
func SuggestedTransition(current Phase, hour int, score int, pillars PillarScore) *Phase {
	switch current {
	case PhaseBoot:
		if hour >= 8 && (pillars.Estabilidade <= 3 || pillars.Energia <= 3) {
			return phasePtr(PhaseHold)
		}
	case PhaseHold:
		if hour >= 15 && (score < 55 || pillars.Energia <= 2.5) {
			return phasePtr(PhaseClear)
		}
	case PhaseClear:
		if hour >= bootStartHour && hour < holdStartHour && score >= 65 && pillars.Energia >= 3.5 {
			return phasePtr(PhaseBoot)
		}
	}
	return nil
}

// Thresholds a phase must meet before RecommendedAction proposes it.
func phaseThresholdMet(phase Phase, score int, pillars PillarScore) bool {
	switch phase {
	case PhaseBoot:
		return score >= 65 && pillars.Energia >= 3.5
	case PhaseHold:
		return score >= 55 && pillars.Energia > 2.5
	default:
		return true
	}
}

// RecommendedAction selects the default action-button phase. Night
// hours and critical readings always resolve to CLEAR; otherwise the
// first un-taken phase from the current window forward is proposed
// when its thresholds hold, falling back to the phase following
// whatever was already taken today.
func RecommendedAction(pillars PillarScore, score int, hour int, taken []Phase) Phase {
	if hour >= nightStartHour || hour < bootStartHour {
		return PhaseClear
	}
	if score < 45 || pillars.Energia <= 2 || pillars.Estabilidade <= 2 {
		return PhaseClear
	}

	order := []Phase{PhaseBoot, PhaseHold, PhaseClear}
	takenSet := make(map[Phase]bool, len(taken))
	for _, p := range taken {
		takenSet[p] = true
	}

	start := 0
	for i, p := range order {
		if p == phaseForHour(hour) {
			start = i
			break
		}
	}

	for _, candidate := range order[start:] {
		if takenSet[candidate] {
			continue
		}
		if phaseThresholdMet(candidate, score, pillars) {
			return candidate
		}
		break
	}

	return nextAfterTaken(order, takenSet)
}

// nextAfterTaken returns the phase following the latest taken phase in
// daily order. With nothing taken the day defaults to HOLD, the
// sustain phase.
func nextAfterTaken(order []Phase, takenSet map[Phase]bool) Phase {
	last := -1
	for i, p := range order {
		if takenSet[p] {
			last = i
		}
	}
	if last == -1 {
		return PhaseHold
	}
	if last+1 < len(order) {
		return order[last+1]
	}
	return PhaseClear
}

func phasePtr(p Phase) *Phase { return &p }
