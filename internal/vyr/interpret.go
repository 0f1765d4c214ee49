package vyr

import "fmt"

type PillarStatusKind string

const (
	StatusFavorable PillarStatusKind = "favorable"
	StatusAttention PillarStatusKind = "attention"
	StatusLimiting  PillarStatusKind = "limiting"
)

// Pillar status thresholds. Configuration-like constants: kept
// adjustable, no derivation implied.
const (
	favorableThreshold = 4.0
	attentionThreshold = 3.0
)

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentInsight  Sentiment = "insight"
	SentimentWarning  Sentiment = "warning"
)

type PillarStatus struct {
	Pillar Pillar           `json:"pillar"`
	Value  float64          `json:"value"`
	Status PillarStatusKind `json:"status"`
	Text   string           `json:"text"`
}

type CognitiveWindow struct {
	Available bool   `json:"available"`
	Duration  string `json:"duration,omitempty"`
	Framing   string `json:"framing"`
}

// Interpretation is the user-facing narrative derived from one day's
// state.
type Interpretation struct {
	PillarStatuses      []PillarStatus  `json:"pillar_statuses"`
	CognitiveWindow     CognitiveWindow `json:"cognitive_window"`
	ScoreNarrative      string          `json:"score_narrative"`
	LimitingFactor      string          `json:"limiting_factor"`
	DayRisk             string          `json:"day_risk"`
	Sentiment           Sentiment       `json:"sentiment"`
	ActionItems         []string        `json:"action_items"`
	StateLabel          string          `json:"state_label"`
	SuggestedTransition *Phase          `json:"suggested_transition,omitempty"`
}

// Interpret derives the full narrative for a computed state. Pure:
// the wall-clock hour is passed in by the caller.
func Interpret(state State, hour int) Interpretation {
	return Interpretation{
		PillarStatuses:      pillarStatuses(state.Pillars),
		CognitiveWindow:     cognitiveWindow(state),
		ScoreNarrative:      scoreNarrative(state.Score),
		LimitingFactor:      limitingFactorText(state.Pillars),
		DayRisk:             dayRisk(state),
		Sentiment:           sentiment(state.Score),
		ActionItems:         actionItems(state.Score),
		StateLabel:          stateLabel(state),
		SuggestedTransition: SuggestedTransition(state.Phase, hour, state.Score, state.Pillars),
	}
}

func pillarStatusKind(value float64) PillarStatusKind {
	switch {
	case value >= favorableThreshold:
		return StatusFavorable
	case value >= attentionThreshold:
		return StatusAttention
	default:
		return StatusLimiting
	}
}

var pillarStatusTexts = map[Pillar]map[PillarStatusKind]string{
	PillarEnergia: {
		StatusFavorable: "Energia favorável: boa recuperação física.",
		StatusAttention: "Energia em atenção: recuperação parcial.",
		StatusLimiting:  "Energia limitante: recuperação insuficiente.",
	},
	PillarClareza: {
		StatusFavorable: "Clareza favorável: sono consistente sustenta o foco.",
		StatusAttention: "Clareza em atenção: o foco pode oscilar.",
		StatusLimiting:  "Clareza limitante: foco comprometido.",
	},
	PillarEstabilidade: {
		StatusFavorable: "Estabilidade favorável: regulação fisiológica sólida.",
		StatusAttention: "Estabilidade em atenção: regulação sob carga.",
		StatusLimiting:  "Estabilidade limitante: sinais de desregulação.",
	},
}

func pillarStatuses(pillars PillarScore) []PillarStatus {
	out := make([]PillarStatus, 0, 3)
	for _, pillar := range []Pillar{PillarEnergia, PillarClareza, PillarEstabilidade} {
		value := PillarValue(pillars, pillar)
		kind := pillarStatusKind(value)
		out = append(out, PillarStatus{
			Pillar: pillar,
			Value:  value,
			Status: kind,
			Text:   pillarStatusTexts[pillar][kind],
		})
	}
	return out
}

var phaseFraming = map[Phase]string{
	PhaseBoot:  "janela da manhã",
	PhaseHold:  "janela da tarde",
	PhaseClear: "janela de recuperação",
}

func cognitiveWindow(state State) CognitiveWindow {
	framing := phaseFraming[state.Phase]
	p := state.Pillars

	switch {
	case state.Score >= 75 && p.Clareza >= 4 && p.Estabilidade >= 3.5:
		return CognitiveWindow{Available: true, Duration: "3–4h", Framing: framing}
	case state.Score >= 65 && p.Clareza >= 3.5 && p.Estabilidade >= 3:
		return CognitiveWindow{Available: true, Duration: "2–3h", Framing: framing}
	case state.Score >= 55 && p.Clareza >= 3:
		return CognitiveWindow{Available: true, Duration: "1–2h", Framing: framing}
	default:
		return CognitiveWindow{Available: false, Framing: framing}
	}
}

func scoreNarrative(score int) string {
	switch {
	case score >= 85:
		return "Todos os pilares sustentam capacidade plena hoje."
	case score >= 70:
		return "Bons sinais gerais, com margem para aprofundar."
	case score >= 55:
		return "Capacidade moderada: priorize o essencial."
	case score >= 40:
		return "Sinais reduzidos: diminua a carga cognitiva."
	default:
		return "Sinais críticos: priorize recuperação."
	}
}

func limitingFactorText(pillars PillarScore) string {
	factor := GetLimitingFactor(pillars)
	value := PillarValue(pillars, factor)

	switch {
	case value >= 4:
		return fmt.Sprintf("Seu fator limitante é %s, ainda assim em nível adequado.", factor)
	case value >= 3:
		return fmt.Sprintf("Hoje, %s é o fator limitante; modere a exigência.", factor)
	default:
		return fmt.Sprintf("Hoje, %s está significativamente reduzida e limita o dia.", factor)
	}
}

// dayRisk picks the highest-priority risk message: stability first,
// then energy, then a generic low-score caution.
func dayRisk(state State) string {
	switch {
	case state.Pillars.Estabilidade < 2.5:
		return "Risco de oscilação emocional ao longo do dia."
	case state.Pillars.Energia < 2.5:
		return "Risco de fadiga acumulada; intercale pausas."
	case state.Score < 50:
		return "Dia exige cautela na alocação de esforço."
	default:
		return "Sem riscos relevantes sinalizados hoje."
	}
}

func sentiment(score int) Sentiment {
	switch {
	case score >= 70:
		return SentimentPositive
	case score >= 50:
		return SentimentInsight
	default:
		return SentimentWarning
	}
}

func actionItems(score int) []string {
	switch {
	case score >= 70:
		return []string{
			"Avance no que exige mais de você hoje.",
			"Proteja um bloco contínuo de foco profundo.",
		}
	case score >= 50:
		return []string{
			"Concentre o esforço em uma prioridade única.",
			"Evite alternância excessiva de contexto.",
		}
	default:
		return []string{"Reduza compromissos ao mínimo viável."}
	}
}

var levelLabels = map[Level]string{
	LevelOtimo:    "Estado ótimo",
	LevelBom:      "Estado sólido",
	LevelModerado: "Estado funcional",
	LevelBaixo:    "Estado reduzido",
	LevelCritico:  "Estado crítico",
}

func stateLabel(state State) string {
	return fmt.Sprintf("%s, sustentado por %s", levelLabels[state.Level], dominantPillar(state.Pillars))
}
