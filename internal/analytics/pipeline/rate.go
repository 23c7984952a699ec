package pipeline

import "github.com/weightlens/weightlens/internal/metrics"

// applyRates computes the day-over-day SMA slope and the causal trend
// TDEE. The TDEE uses the previous record's intake, not today's: the
// weight change observed on day i reflects energy consumed through
// day i-1. The raw TDEE difference against the measured expenditure is
// derived in the same pass.
func applyRates(records []metrics.DailyRecord, cfg Config) []metrics.DailyRecord {
	out := cloneAll(records)
	for i := range out {
		r := &out[i]
		r.DailyRate = nil
		r.TrendTDEE = nil
		r.TDEEDifference = nil

		if i == 0 {
			continue
		}
		prev := &out[i-1]
		if prev.SMA == nil || r.SMA == nil {
			continue
		}

		// A gap longer than the SMA window means the two averages no
		// longer share underlying observations; a slope across it
		// would be fiction.
		gapDays := metrics.DaysBetween(prev.Date, r.Date)
		if gapDays <= 0 || gapDays > cfg.SMAWindow {
			continue
		}

		rate := (*r.SMA - *prev.SMA) / float64(gapDays)
		r.DailyRate = &rate

		if prev.CalorieIntake == nil {
			continue
		}
		tdee := *prev.CalorieIntake - rate*cfg.KcalsPerKg
		r.TrendTDEE = &tdee

		if r.MeasuredExpenditure != nil {
			diff := tdee - *r.MeasuredExpenditure
			r.TDEEDifference = &diff
		}
	}
	return out
}
