package pipeline

import (
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
)

// applyDispersion computes the trailing-window moving average and
// dispersion of weight per day, plus the matching moving averages of
// lean and fat mass. Windows expand from the start of the series until
// they reach the configured size, then roll.
func applyDispersion(records []metrics.DailyRecord, cfg Config, provider stats.Provider) []metrics.DailyRecord {
	out := cloneAll(records)

	for i := range out {
		r := &out[i]
		r.SMA = nil
		r.StdDev = nil
		r.LowerBound = nil
		r.UpperBound = nil

		weights := windowValues(out, i, cfg.SMAWindow, func(rec *metrics.DailyRecord) *float64 {
			return rec.Weight
		})
		if len(weights) == 0 {
			continue
		}

		mean, ok := provider.Mean(weights)
		if !ok {
			continue
		}
		r.SMA = &mean

		// Sample stddev needs two values; a single observation has
		// zero dispersion by convention.
		sd := 0.0
		if len(weights) > 1 {
			if v, ok := provider.StdDev(weights); ok {
				sd = v
			}
		}
		r.StdDev = &sd

		lower := mean - cfg.BandMultiplier*sd
		upper := mean + cfg.BandMultiplier*sd
		r.LowerBound = &lower
		r.UpperBound = &upper
	}

	// Same trailing-window mean, independently, for the composition
	// series. No dispersion needed for these.
	for i := range out {
		r := &out[i]
		r.LeanMassSMA = windowMean(out, i, cfg.SMAWindow, provider, func(rec *metrics.DailyRecord) *float64 {
			return rec.LeanMass
		})
		r.FatMassSMA = windowMean(out, i, cfg.SMAWindow, provider, func(rec *metrics.DailyRecord) *float64 {
			return rec.FatMass
		})
	}

	return out
}

// windowValues collects the non-nil values of field over the trailing
// window of up to windowSize records ending at index i.
func windowValues(records []metrics.DailyRecord, i, windowSize int, field func(*metrics.DailyRecord) *float64) []float64 {
	start := i - windowSize + 1
	if start < 0 {
		start = 0
	}
	values := make([]float64, 0, i-start+1)
	for j := start; j <= i; j++ {
		if v := field(&records[j]); v != nil {
			values = append(values, *v)
		}
	}
	return values
}

// windowMean returns the mean of the trailing window of field, or nil
// when the window holds no valid values.
func windowMean(records []metrics.DailyRecord, i, windowSize int, provider stats.Provider, field func(*metrics.DailyRecord) *float64) *float64 {
	values := windowValues(records, i, windowSize, field)
	if len(values) == 0 {
		return nil
	}
	mean, ok := provider.Mean(values)
	if !ok {
		return nil
	}
	return &mean
}
