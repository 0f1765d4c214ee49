// Package vyr implements the cognitive state engine: validation of raw
// biometric samples, baseline derivation, pillar scoring, score
// aggregation, day-phase rules, and interpretation. Every function in
// this package is pure and safe for concurrent use.
package vyr

type Phase string

const (
	PhaseBoot  Phase = "BOOT"
	PhaseHold  Phase = "HOLD"
	PhaseClear Phase = "CLEAR"
)

type Level string

const (
	LevelCritico  Level = "Crítico"
	LevelBaixo    Level = "Baixo"
	LevelModerado Level = "Moderado"
	LevelBom      Level = "Bom"
	LevelOtimo    Level = "Ótimo"
)

type Pillar string

const (
	PillarEnergia      Pillar = "energia"
	PillarClareza      Pillar = "clareza"
	PillarEstabilidade Pillar = "estabilidade"
)

type ActivityLevel string

const (
	ActivityHigh     ActivityLevel = "high"
	ActivityModerate ActivityLevel = "moderate"
	ActivityLow      ActivityLevel = "low"
	ActivityNone     ActivityLevel = "none"
)

// Metric identifies a baseline-tracked biometric dimension.
type Metric string

const (
	MetricRHR           Metric = "rhr"
	MetricHRV           Metric = "hrv"
	MetricSleepDuration Metric = "sleep_duration"
	MetricSleepQuality  Metric = "sleep_quality"
	MetricSpO2          Metric = "spo2"
)

// BiometricSample holds one sync's worth of raw or validated readings.
// Every field is optional; a nil field means the device reported
// nothing, which is distinct from a zero reading.
type BiometricSample struct {
	RestingHeartRate *float64      `json:"resting_heart_rate,omitempty"`
	HRVIndex         *float64      `json:"hrv_index,omitempty"`
	HRVRawMs         *float64      `json:"hrv_raw_ms,omitempty"`
	SleepDuration    *float64      `json:"sleep_duration_hours,omitempty"`
	SleepQuality     *float64      `json:"sleep_quality,omitempty"`
	SleepRegularity  *float64      `json:"sleep_regularity_minutes,omitempty"`
	Awakenings       *float64      `json:"awakenings,omitempty"`
	SpO2             *float64      `json:"spo2_percentage,omitempty"`
	RespiratoryRate  *float64      `json:"respiratory_rate,omitempty"`
	StressLevel      *float64      `json:"stress_level,omitempty"`
	TempDeviation    *float64      `json:"temp_deviation_celsius,omitempty"`
	ActivityLevel    ActivityLevel `json:"activity_level,omitempty"`
}

// Baseline is a (mean, std) reference pair for one metric.
type Baseline struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
}

// BaselineValues maps each metric to its active baseline. A missing
// entry means the metric contributes nothing to pillar scoring.
type BaselineValues map[Metric]Baseline

// PillarScore holds the three sub-scores, each in [0, 5].
type PillarScore struct {
	Energia      float64 `json:"energia"`
	Clareza      float64 `json:"clareza"`
	Estabilidade float64 `json:"estabilidade"`
}

// State is one day's computed cognitive state. Immutable once
// computed; a fresh snapshot is produced per (user, day).
type State struct {
	Score          int         `json:"score"`
	Level          Level       `json:"level"`
	Pillars        PillarScore `json:"pillars"`
	LimitingFactor Pillar      `json:"limiting_factor"`
	Phase          Phase       `json:"phase"`
	HasData        bool        `json:"has_data"`
}

// DailyMetrics is one day's aggregated readings for the metrics that
// feed personal baselines. Nil fields carry no value for that day.
type DailyMetrics struct {
	Day           string
	RHR           *float64
	HRVIndex      *float64
	SleepDuration *float64
	SleepQuality  *float64
	SpO2          *float64
}

// PopulationRef is a population reference band for one metric,
// optionally scoped to a demographic.
type PopulationRef struct {
	Metric   Metric
	RangeMin float64
	RangeMax float64
}

func ptr(v float64) *float64 { return &v }
