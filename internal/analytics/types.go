// Package analytics provides shared types for the weight-trend
// analysis packages (pipeline, regression, plateau, trendchange,
// weekly, goals, snapshot).
package analytics

import "time"

// Point is a single dated observation used as regression input.
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// DateRange is an inclusive [Start, End] day range.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the range is usable: both endpoints set and
// Start not after End.
func (r DateRange) Valid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && !r.Start.After(r.End)
}

// Contains reports whether t falls within the range, inclusive.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Days returns the number of calendar days the range spans, counting
// both endpoints.
func (r DateRange) Days() int {
	if !r.Valid() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}
