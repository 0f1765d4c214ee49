package vyr

import "math"

// Physiological plausibility bounds. Readings outside these ranges are
// clamped, never rejected: sensor noise must not abort scoring.
const (
	minRHR         = 35
	maxRHR         = 120
	minHRVRawMs    = 5
	maxHRVRawMs    = 200
	minSleepHours  = 0
	maxSleepHours  = 14
	minSpO2        = 70
	maxSpO2        = 100
	minTempDev     = -4
	maxTempDev     = 4
	minRegularity  = -120
	maxRegularity  = 120
	minAwakenings  = 0
	maxAwakenings  = 30
	minStress      = 0
	maxStress      = 100
	minRespiratory = 8
	maxRespiratory = 30
)

// Validate returns a copy of the sample with every present field
// clamped to its physiological range. When both a pre-normalized HRV
// index and a raw HRV-in-ms reading are present the index wins;
// otherwise the raw reading is converted via NormalizeHRV. Absent
// fields pass through as absent.
func Validate(raw BiometricSample) BiometricSample {
	s := raw

	s.RestingHeartRate = clampField(raw.RestingHeartRate, minRHR, maxRHR)
	s.SleepDuration = clampField(raw.SleepDuration, minSleepHours, maxSleepHours)
	s.SleepQuality = clampField(raw.SleepQuality, 0, 100)
	s.SleepRegularity = clampField(raw.SleepRegularity, minRegularity, maxRegularity)
	s.Awakenings = clampField(raw.Awakenings, minAwakenings, maxAwakenings)
	s.SpO2 = clampField(raw.SpO2, minSpO2, maxSpO2)
	s.RespiratoryRate = clampField(raw.RespiratoryRate, minRespiratory, maxRespiratory)
	s.StressLevel = clampField(raw.StressLevel, minStress, maxStress)
	s.TempDeviation = clampField(raw.TempDeviation, minTempDev, maxTempDev)
	s.HRVRawMs = clampField(raw.HRVRawMs, minHRVRawMs, maxHRVRawMs)

	switch {
	case raw.HRVIndex != nil:
		s.HRVIndex = clampField(raw.HRVIndex, 0, 100)
	case raw.HRVRawMs != nil:
		s.HRVIndex = ptr(NormalizeHRV(*raw.HRVRawMs))
	}

	return s
}

// NormalizeHRV maps a raw HRV reading in milliseconds onto a 0-100
// index. HRV has a long-tailed distribution, so the mapping is
// logarithmic: typical readings (20-80ms) stay well spread across the
// output range. Input is clamped to [5, 200] before evaluation, which
// pins NormalizeHRV(5) to 0 and NormalizeHRV(200) to 100.
func NormalizeHRV(ms float64) float64 {
	ms = clamp(ms, minHRVRawMs, maxHRVRawMs)
	return (math.Log(ms) - math.Log(minHRVRawMs)) / (math.Log(maxHRVRawMs) - math.Log(minHRVRawMs)) * 100
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampField(v *float64, lo, hi float64) *float64 {
	if v == nil {
		return nil
	}
	return ptr(clamp(*v, lo, hi))
}
