package pipeline

import (
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
)

// applyAdaptiveTDEE estimates TDEE from a fixed-length trailing
// window: average intake over the window against the total SMA change
// across it. It demands a data-completeness threshold and so reacts
// more slowly than the daily estimator, trading responsiveness for
// stability.
func applyAdaptiveTDEE(records []metrics.DailyRecord, cfg Config, provider stats.Provider) []metrics.DailyRecord {
	out := cloneAll(records)
	window := cfg.AdaptiveWindow

	for i := range out {
		r := &out[i]
		r.AdaptiveTDEE = nil

		if i < window-1 {
			continue
		}
		start := i - window + 1
		first := &out[start]

		if first.SMA == nil || r.SMA == nil {
			continue
		}

		intakes := make([]float64, 0, window)
		for j := start; j <= i; j++ {
			if out[j].CalorieIntake != nil {
				intakes = append(intakes, *out[j].CalorieIntake)
			}
		}
		if float64(len(intakes)) < cfg.AdaptiveMinDataRatio*float64(window) {
			continue
		}

		// Actual date span, not window-1: tolerates calendar gaps
		// between records inside the window.
		actualDays := metrics.DaysBetween(first.Date, r.Date)
		if actualDays <= 0 {
			continue
		}

		avgIntake, ok := provider.Mean(intakes)
		if !ok {
			continue
		}

		avgDailyChange := (*r.SMA - *first.SMA) / float64(actualDays)
		tdee := avgIntake - avgDailyChange*cfg.KcalsPerKg
		r.AdaptiveTDEE = &tdee
	}
	return out
}
