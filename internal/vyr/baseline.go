package vyr

import "math"

// minBaselineDays is the number of days of personal history required
// before personal statistics take priority over population references.
const minBaselineDays = 3

// BaselineWindowDays is the trailing window personal baselines are
// computed over.
const BaselineWindowDays = 14

// defaultBaselines is the final fallback tier, used for any metric
// with neither personal history nor a population reference row.
var defaultBaselines = BaselineValues{
	MetricRHR:           {Mean: 63, Std: 5},
	MetricHRV:           {Mean: 55, Std: 12},
	MetricSleepDuration: {Mean: 7.0, Std: 0.7},
	MetricSleepQuality:  {Mean: 60, Std: 15},
	MetricSpO2:          {Mean: 97, Std: 1.5},
}

// DefaultBaselines returns a copy of the hardcoded fallback baseline
// table.
func DefaultBaselines() BaselineValues {
	out := make(BaselineValues, len(defaultBaselines))
	for m, b := range defaultBaselines {
		out[m] = b
	}
	return out
}

// ComputeBaseline derives per-metric (mean, std) pairs from the
// supplied daily history, degrading through population references and
// finally the hardcoded defaults. With at least minBaselineDays days
// of history, each metric's baseline is the sample mean and population
// standard deviation of its non-nil daily values; a metric with zero
// valid samples yields no entry. With less history, every metric falls
// back to its population reference band when one exists, deriving
// mean = (min+max)/2 and std = (max-min)/4, and to the hardcoded
// default otherwise.
func ComputeBaseline(history []DailyMetrics, refs []PopulationRef) BaselineValues {
	if len(history) >= minBaselineDays {
		if personal := personalBaseline(history); len(personal) > 0 {
			return personal
		}
	}
	return fallbackBaseline(refs)
}

func personalBaseline(history []DailyMetrics) BaselineValues {
	values := make(BaselineValues)
	for metric, pick := range metricAccessors {
		var samples []float64
		for i := range history {
			if v := pick(&history[i]); v != nil {
				samples = append(samples, *v)
			}
		}
		if len(samples) == 0 {
			continue
		}
		values[metric] = Baseline{
			Mean: mean(samples),
			Std:  populationStd(samples),
		}
	}
	return values
}

func fallbackBaseline(refs []PopulationRef) BaselineValues {
	values := DefaultBaselines()
	for _, ref := range refs {
		if _, known := defaultBaselines[ref.Metric]; !known {
			continue
		}
		values[ref.Metric] = Baseline{
			Mean: (ref.RangeMin + ref.RangeMax) / 2,
			// a (min, max) band approximates a range spanning ±2σ
			Std: (ref.RangeMax - ref.RangeMin) / 4,
		}
	}
	return values
}

var metricAccessors = map[Metric]func(*DailyMetrics) *float64{
	MetricRHR:           func(d *DailyMetrics) *float64 { return d.RHR },
	MetricHRV:           func(d *DailyMetrics) *float64 { return d.HRVIndex },
	MetricSleepDuration: func(d *DailyMetrics) *float64 { return d.SleepDuration },
	MetricSleepQuality:  func(d *DailyMetrics) *float64 { return d.SleepQuality },
	MetricSpO2:          func(d *DailyMetrics) *float64 { return d.SpO2 },
}

func mean(samples []float64) float64 {
	var sum float64
	for _, v := range samples {
		sum += v
	}
	return sum / float64(len(samples))
}

func populationStd(samples []float64) float64 {
	m := mean(samples)
	var sum float64
	for _, v := range samples {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(samples)))
}
