package vyr

import "math"

// Weights for the mean/minimum blend. Pure averaging would hide a
// single collapsed pillar; blending in the minimum penalizes imbalance
// while still rewarding overall strength.
const (
	avgWeight = 0.6
	minWeight = 0.4
)

// ComputeScore reduces the three pillar scores to a single 0-100
// integer.
func ComputeScore(pillars PillarScore) int {
	avg := (pillars.Energia + pillars.Clareza + pillars.Estabilidade) / 3
	low := math.Min(pillars.Energia, math.Min(pillars.Clareza, pillars.Estabilidade))
	return int(math.Round((avg*avgWeight + low*minWeight) / 5 * 100))
}

// GetLevel classifies a score into its qualitative band. Boundaries
// are inclusive on the lower bound of each band.
func GetLevel(score int) Level {
	switch {
	case score >= 85:
		return LevelOtimo
	case score >= 70:
		return LevelBom
	case score >= 55:
		return LevelModerado
	case score >= 40:
		return LevelBaixo
	default:
		return LevelCritico
	}
}

// GetLimitingFactor returns the pillar holding the minimum value.
// Ties resolve in fixed priority order: energia, clareza,
// estabilidade.
func GetLimitingFactor(pillars PillarScore) Pillar {
	factor := PillarEnergia
	low := pillars.Energia
	if pillars.Clareza < low {
		factor = PillarClareza
		low = pillars.Clareza
	}
	if pillars.Estabilidade < low {
		factor = PillarEstabilidade
	}
	return factor
}

// dominantPillar returns the pillar holding the maximum value, with
// the same fixed priority order on ties.
func dominantPillar(pillars PillarScore) Pillar {
	dominant := PillarEnergia
	high := pillars.Energia
	if pillars.Clareza > high {
		dominant = PillarClareza
		high = pillars.Clareza
	}
	if pillars.Estabilidade > high {
		dominant = PillarEstabilidade
	}
	return dominant
}

// PillarValue returns the named pillar's value.
func PillarValue(pillars PillarScore, pillar Pillar) float64 {
	switch pillar {
	case PillarClareza:
		return pillars.Clareza
	case PillarEstabilidade:
		return pillars.Estabilidade
	default:
		return pillars.Energia
	}
}
