package vyr

import "math"

const (
	// pillarBase is the neutral midpoint every pillar starts from.
	pillarBase = 3.0

	// zScoreClamp bounds every z-score before it becomes a pillar
	// contribution.
	zScoreClamp = 2.0

	// stdEpsilon guards the z-score against division blow-up. A
	// baseline this flat carries no signal, so the z-score is forced
	// to zero rather than erroring.
	stdEpsilon = 0.01

	// zPillarScale converts a clamped z-score into pillar units.
	zPillarScale = 0.75
)

// Target weights per pillar. The sum of the present contributions'
// weights is rescaled to this value, so partial data moves the pillar
// across its full range instead of flattening toward the base.
const (
	energiaTargetWeight      = 2.5
	clarezaTargetWeight      = 2.5
	estabilidadeTargetWeight = 2.0
)

// Fixed references for metrics scored against population-typical
// values rather than a personal baseline.
var (
	refSleepRegularity = Baseline{Mean: 30, Std: 20}
	refAwakenings      = Baseline{Mean: 3, Std: 2}
	refStress          = Baseline{Mean: 40, Std: 15}
	refTempDeviation   = Baseline{Mean: 0.2, Std: 0.3}
)

// Flat adjustments applied to energia after the weighted average.
const (
	highActivityPenalty = -0.5
	lowActivityBonus    = 0.25
)

// ComputePillars derives the three pillar scores from a validated
// sample and its baseline. Each pillar starts from the neutral base,
// collects (contribution, weight) pairs from whichever inputs are
// present, and combines them with the weights rescaled so their sum
// equals the pillar's target weight. Absent inputs simply drop out;
// a pillar with no inputs stays at the base value.
func ComputePillars(sample BiometricSample, baseline BaselineValues) PillarScore {
	return PillarScore{
		Energia:      round2(computeEnergia(sample, baseline)),
		Clareza:      round2(computeClareza(sample, baseline)),
		Estabilidade: round2(computeEstabilidade(sample, baseline)),
	}
}

func computeEnergia(sample BiometricSample, baseline BaselineValues) float64 {
	var contribs []contribution

	if sample.RestingHeartRate != nil {
		if b, ok := baseline[MetricRHR]; ok {
			// lower resting heart rate is better
			contribs = append(contribs, contribution{
				value:  -zToPillar(zScore(*sample.RestingHeartRate, b.Mean, b.Std)),
				weight: 1.0,
			})
		}
	}
	if sample.SleepDuration != nil {
		if b, ok := baseline[MetricSleepDuration]; ok {
			contribs = append(contribs, contribution{
				value:  zToPillar(zScore(*sample.SleepDuration, b.Mean, b.Std)),
				weight: 1.0,
			})
		}
	}
	if sample.SleepQuality != nil {
		if b, ok := baseline[MetricSleepQuality]; ok {
			contribs = append(contribs, contribution{
				value:  zToPillar(zScore(*sample.SleepQuality, b.Mean, b.Std)),
				weight: 0.5,
			})
		}
	}
	if sample.SpO2 != nil {
		if b, ok := baseline[MetricSpO2]; ok {
			contribs = append(contribs, contribution{
				value:  zToPillar(zScore(*sample.SpO2, b.Mean, b.Std)),
				weight: 0.4,
			})
		}
	}

	score := pillarBase + weightedAdjustment(contribs, energiaTargetWeight)

	switch sample.ActivityLevel {
	case ActivityHigh:
		score += highActivityPenalty
	case ActivityLow:
		score += lowActivityBonus
	}

	return clamp(score, 0, 5)
}

func computeClareza(sample BiometricSample, baseline BaselineValues) float64 {
	var contribs []contribution

	if sample.SleepRegularity != nil {
		// irregularity in either direction hurts
		deviation := math.Abs(*sample.SleepRegularity)
		contribs = append(contribs, contribution{
			value:  -zToPillar(zScore(deviation, refSleepRegularity.Mean, refSleepRegularity.Std)),
			weight: 1.0,
		})
	}
	if sample.SleepQuality != nil {
		if b, ok := baseline[MetricSleepQuality]; ok {
			contribs = append(contribs, contribution{
				value:  zToPillar(zScore(*sample.SleepQuality, b.Mean, b.Std)),
				weight: 1.0,
			})
		}
	}
	if sample.Awakenings != nil {
		contribs = append(contribs, contribution{
			value:  -zToPillar(zScore(*sample.Awakenings, refAwakenings.Mean, refAwakenings.Std)),
			weight: 0.5,
		})
	}

	return clamp(pillarBase+weightedAdjustment(contribs, clarezaTargetWeight), 0, 5)
}

func computeEstabilidade(sample BiometricSample, baseline BaselineValues) float64 {
	var contribs []contribution

	if sample.HRVIndex != nil {
		if b, ok := baseline[MetricHRV]; ok {
			contribs = append(contribs, contribution{
				value:  zToPillar(zScore(*sample.HRVIndex, b.Mean, b.Std)),
				weight: 1.3,
			})
		}
	}
	if sample.StressLevel != nil {
		contribs = append(contribs, contribution{
			value:  -zToPillar(zScore(*sample.StressLevel, refStress.Mean, refStress.Std)),
			weight: 0.7,
		})
	}
	if sample.TempDeviation != nil {
		deviation := math.Abs(*sample.TempDeviation)
		contribs = append(contribs, contribution{
			value:  -zToPillar(zScore(deviation, refTempDeviation.Mean, refTempDeviation.Std)),
			weight: 0.3,
		})
	}

	return clamp(pillarBase+weightedAdjustment(contribs, estabilidadeTargetWeight), 0, 5)
}

type contribution struct {
	value  float64
	weight float64
}

// weightedAdjustment rescales the present contributions' weights so
// they sum to targetWeight, then combines them. This rescaling is
// what makes missing data degrade gracefully: with every expected
// input present the target weight is fully spent, and with fewer
// inputs each one is up-weighted so the pillar can still move its
// full range.
func weightedAdjustment(contribs []contribution, targetWeight float64) float64 {
	if len(contribs) == 0 {
		return 0
	}

	var totalWeight float64
	for _, c := range contribs {
		totalWeight += c.weight
	}
	if totalWeight == 0 {
		return 0
	}

	scale := targetWeight / totalWeight
	var adjustment float64
	for _, c := range contribs {
		adjustment += c.value * c.weight * scale
	}
	return adjustment
}

// zScore computes (value-mean)/std clamped to ±zScoreClamp. A std
// below stdEpsilon yields 0.
func zScore(value, mean, std float64) float64 {
	if std < stdEpsilon {
		return 0
	}
	return clamp((value-mean)/std, -zScoreClamp, zScoreClamp)
}

func zToPillar(z float64) float64 {
	return z * zPillarScale
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
