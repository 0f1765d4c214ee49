package vyr

import (
	"strings"
	"testing"
)

func TestCognitiveWindow(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name         string
		state        State
		wantDuration string
	}{
		{
			name: "wide window",
			state: State{
				Score:   80,
				Pillars: PillarScore{Energia: 4, Clareza: 4.2, Estabilidade: 3.6},
				Phase:   PhaseBoot,
			},
			wantDuration: "3–4h",
		},
		{
			name: "medium window",
			state: State{
				Score:   68,
				Pillars: PillarScore{Energia: 3.5, Clareza: 3.6, Estabilidade: 3.2},
				Phase:   PhaseHold,
			},
			wantDuration: "2–3h",
		},
		{
			name: "narrow window",
			state: State{
				Score:   58,
				Pillars: PillarScore{Energia: 3, Clareza: 3.1, Estabilidade: 2.8},
				Phase:   PhaseHold,
			},
			wantDuration: "1–2h",
		},
		{
			name: "unavailable below score threshold",
			state: State{
				Score:   50,
				Pillars: PillarScore{Energia: 3, Clareza: 4, Estabilidade: 4},
				Phase:   PhaseClear,
			},
			wantDuration: "",
		},
		{
			name: "unavailable when clarity lags despite score",
			state: State{
				Score:   80,
				Pillars: PillarScore{Energia: 5, Clareza: 2.5, Estabilidade: 4},
				Phase:   PhaseBoot,
			},
			wantDuration: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := cognitiveWindow(tt.state)
			if got.Duration != tt.wantDuration {
				t.Errorf("duration = %q, want %q", got.Duration, tt.wantDuration)
			}
			if got.Available != (tt.wantDuration != "") {
				t.Errorf("available = %v, want %v", got.Available, tt.wantDuration != "")
			}
			if got.Framing != phaseFraming[tt.state.Phase] {
				t.Errorf("framing = %q, want %q", got.Framing, phaseFraming[tt.state.Phase])
			}
		})
	}
}

func TestPillarStatuses(t *testing.T) {
	t.Parallel()

	statuses := pillarStatuses(PillarScore{Energia: 4.2, Clareza: 3.1, Estabilidade: 2.4})

	want := []PillarStatusKind{StatusFavorable, StatusAttention, StatusLimiting}
	for i, s := range statuses {
		if s.Status != want[i] {
			t.Errorf("%s status = %s, want %s", s.Pillar, s.Status, want[i])
		}
		if s.Text == "" {
			t.Errorf("%s has empty narrative text", s.Pillar)
		}
	}
}

func TestLimitingFactorTextTone(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		pillars  PillarScore
		fragment string
	}{
		{
			name:     "mild when limiting value is adequate",
			pillars:  PillarScore{Energia: 4.1, Clareza: 4.5, Estabilidade: 4.8},
			fragment: "ainda assim em nível adequado",
		},
		{
			name:     "moderate tone",
			pillars:  PillarScore{Energia: 3.2, Clareza: 4, Estabilidade: 4},
			fragment: "modere a exigência",
		},
		{
			name:     "severe tone",
			pillars:  PillarScore{Energia: 4, Clareza: 2.1, Estabilidade: 4},
			fragment: "limita o dia",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := limitingFactorText(tt.pillars)
			if !strings.Contains(got, tt.fragment) {
				t.Errorf("limitingFactorText() = %q, want fragment %q", got, tt.fragment)
			}
		})
	}
}

func TestDayRiskPriority(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		state    State
		fragment string
	}{
		{
			name: "stability risk wins over energy risk",
			state: State{
				Score:   40,
				Pillars: PillarScore{Energia: 2, Clareza: 3, Estabilidade: 2},
			},
			fragment: "oscilação emocional",
		},
		{
			name: "energy risk when stability holds",
			state: State{
				Score:   45,
				Pillars: PillarScore{Energia: 2, Clareza: 3, Estabilidade: 3},
			},
			fragment: "fadiga",
		},
		{
			name: "generic caution on low score",
			state: State{
				Score:   45,
				Pillars: PillarScore{Energia: 3, Clareza: 3, Estabilidade: 3},
			},
			fragment: "cautela",
		},
		{
			name: "no risk",
			state: State{
				Score:   72,
				Pillars: PillarScore{Energia: 4, Clareza: 4, Estabilidade: 4},
			},
			fragment: "Sem riscos",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := dayRisk(tt.state)
			if !strings.Contains(got, tt.fragment) {
				t.Errorf("dayRisk() = %q, want fragment %q", got, tt.fragment)
			}
		})
	}
}

func TestSentiment(t *testing.T) {
	t.Parallel()
	tests := []struct {
		score int
		want  Sentiment
	}{
		{score: 90, want: SentimentPositive},
		{score: 70, want: SentimentPositive},
		{score: 69, want: SentimentInsight},
		{score: 50, want: SentimentInsight},
		{score: 49, want: SentimentWarning},
		{score: 0, want: SentimentWarning},
	}

	for _, tt := range tests {
		if got := sentiment(tt.score); got != tt.want {
			t.Errorf("sentiment(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestInterpret(t *testing.T) {
	t.Parallel()

	state := State{
		Score:          73,
		Level:          LevelBom,
		Pillars:        PillarScore{Energia: 4.09, Clareza: 3.98, Estabilidade: 3.41},
		LimitingFactor: PillarEstabilidade,
		Phase:          PhaseBoot,
		HasData:        true,
	}

	got := Interpret(state, 9)

	if got.Sentiment != SentimentPositive {
		t.Errorf("sentiment = %s, want %s", got.Sentiment, SentimentPositive)
	}
	if len(got.ActionItems) == 0 || len(got.ActionItems) > 2 {
		t.Errorf("action items = %d, want 1-2", len(got.ActionItems))
	}
	if !strings.Contains(got.StateLabel, string(PillarEnergia)) {
		t.Errorf("state label %q should name the dominant pillar", got.StateLabel)
	}
	if !got.CognitiveWindow.Available || got.CognitiveWindow.Duration != "2–3h" {
		t.Errorf("cognitive window = %+v, want available 2–3h", got.CognitiveWindow)
	}
	if len(got.PillarStatuses) != 3 {
		t.Errorf("pillar statuses = %d, want 3", len(got.PillarStatuses))
	}
}
