// Package trendchange flags dates where the local weight trend slope
// shifts by more than a configured amount.
package trendchange

import (
	"math"
	"time"

	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/utils"
)

// ChangePoint marks a detected acceleration or deceleration. Magnitude
// is the signed slope difference in kg/day: positive means the trend
// accelerated upward after the date.
type ChangePoint struct {
	Date      time.Time `json:"date"`
	Magnitude float64   `json:"magnitude"`
}

// Config controls detection.
type Config struct {
	// WindowDays is the record count on each side of a candidate.
	WindowDays int

	// MinSlopeDiffKgWeek is the detection threshold, expressed in
	// kg/week and converted to kg/day internally.
	MinSlopeDiffKgWeek float64
}

// DefaultConfig returns the standard trend-change thresholds.
func DefaultConfig() Config {
	return Config{
		WindowDays:         14,
		MinSlopeDiffKgWeek: 0.25,
	}
}

// sideSlope computes the two-point slope over one window of records,
// using only records with a defined SMA. It reports ok=false when
// fewer than minValid records carry an SMA or the endpoints coincide.
func sideSlope(window []metrics.DailyRecord, minValid int) (float64, bool) {
	var valid []metrics.DailyRecord
	for _, r := range window {
		if r.SMA != nil {
			valid = append(valid, r)
		}
	}
	if len(valid) < minValid {
		return 0, false
	}
	first, last := valid[0], valid[len(valid)-1]
	days := metrics.DaysBetween(first.Date, last.Date)
	if days <= 0 {
		return 0, false
	}
	return (*last.SMA - *first.SMA) / float64(days), true
}

// Detect scans for indices where the two-point SMA slope of the window
// after differs from the window before by at least the threshold.
// Candidates within WindowDays/2 days of the last emitted change point
// are skipped, so the first detection in a shifting region wins.
func Detect(records []metrics.DailyRecord, cfg Config) []ChangePoint {
	changes := []ChangePoint{}
	if cfg.WindowDays <= 0 || len(records) <= 2*cfg.WindowDays {
		return changes
	}

	minValid := cfg.WindowDays
	if minValid > 5 {
		minValid = 5
	}
	threshold := cfg.MinSlopeDiffKgWeek / utils.DaysPerWeek
	dedupDays := cfg.WindowDays / 2

	var lastEmitted *time.Time
	for i := cfg.WindowDays; i < len(records)-cfg.WindowDays; i++ {
		if lastEmitted != nil &&
			metrics.DaysBetween(*lastEmitted, records[i].Date) < dedupDays {
			continue
		}

		before, okBefore := sideSlope(records[i-cfg.WindowDays:i], minValid)
		after, okAfter := sideSlope(records[i+1:i+1+cfg.WindowDays], minValid)
		if !okBefore || !okAfter {
			continue
		}

		diff := after - before
		if math.Abs(diff) < threshold {
			continue
		}

		changes = append(changes, ChangePoint{Date: records[i].Date, Magnitude: diff})
		emitted := records[i].Date
		lastEmitted = &emitted
	}

	return changes
}

// FilterRange keeps change points inside the inclusive [start, end]
// window.
func FilterRange(changes []ChangePoint, start, end time.Time) []ChangePoint {
	out := make([]ChangePoint, 0, len(changes))
	for _, c := range changes {
		if c.Date.Before(start) || c.Date.After(end) {
			continue
		}
		out = append(out, c)
	}
	return out
}
