package pipeline

import (
	"github.com/weightlens/weightlens/internal/analytics/smoothing"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/utils"
)

// applySmoothedSeries smooths the daily rate into a weekly rate and
// the raw TDEE difference into its rolling average.
func applySmoothedSeries(records []metrics.DailyRecord, cfg Config) []metrics.DailyRecord {
	out := cloneAll(records)

	rates := make([]*float64, len(out))
	diffs := make([]*float64, len(out))
	for i := range out {
		rates[i] = out[i].DailyRate
		diffs[i] = out[i].TDEEDifference
	}

	weeklyRates := smoothing.Scale(smoothing.Smooth(rates, cfg.RateSmoothingWindow), utils.DaysPerWeek)
	avgDiffs := smoothing.Smooth(diffs, cfg.TDEEDiffWindow)

	for i := range out {
		out[i].SmoothedWeeklyRate = weeklyRates[i]
		out[i].AvgTDEEDifference = avgDiffs[i]
	}
	return out
}
