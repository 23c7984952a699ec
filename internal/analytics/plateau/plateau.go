// Package plateau segments the timeline into sustained runs of
// near-zero smoothed weight-change rate.
package plateau

import (
	"math"
	"time"

	"github.com/weightlens/weightlens/internal/metrics"
)

// Plateau is a maximal run of consecutive flat days.
type Plateau struct {
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}

// Config controls detection.
type Config struct {
	// RateThresholdKgWeek: a day is flat when the magnitude of its
	// smoothed weekly rate is below this (kg/week).
	RateThresholdKgWeek float64

	// MinDurationWeeks: minimum run length before a run counts.
	MinDurationWeeks float64
}

// DefaultConfig returns the standard plateau thresholds.
func DefaultConfig() Config {
	return Config{
		RateThresholdKgWeek: 0.07,
		MinDurationWeeks:    3,
	}
}

// Detect scans records in date order and returns every flat run that
// lasts long enough. A run still open at the final record is flushed.
func Detect(records []metrics.DailyRecord, cfg Config) []Plateau {
	var plateaus []Plateau
	var runStart *time.Time
	var lastFlat time.Time

	// The -1 tolerates an off-by-one at the run boundary: a run of
	// exactly minWeeks*7 calendar days spans minWeeks*7-1 day gaps.
	minDays := cfg.MinDurationWeeks*7 - 1

	flush := func() {
		if runStart == nil {
			return
		}
		duration := float64(metrics.DaysBetween(*runStart, lastFlat))
		if duration >= minDays {
			plateaus = append(plateaus, Plateau{StartDate: *runStart, EndDate: lastFlat})
		}
		runStart = nil
	}

	for _, r := range records {
		flat := r.SmoothedWeeklyRate != nil &&
			math.Abs(*r.SmoothedWeeklyRate) < cfg.RateThresholdKgWeek

		if flat {
			if runStart == nil {
				start := r.Date
				runStart = &start
			}
			lastFlat = r.Date
			continue
		}
		flush()
	}
	flush()

	return plateaus
}

// FilterRange keeps plateaus that overlap the inclusive [start, end]
// window, used when detection runs over the full series but display
// wants only the active range.
func FilterRange(plateaus []Plateau, start, end time.Time) []Plateau {
	out := make([]Plateau, 0, len(plateaus))
	for _, p := range plateaus {
		if p.EndDate.Before(start) || p.StartDate.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}
