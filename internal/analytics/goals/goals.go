// Package goals projects the current trend against a user goal:
// time-to-goal, the rate and calorie balance a dated goal demands, and
// a qualitative verdict on the current rate versus the target rate.
package goals

import (
	"fmt"
	"math"
	"time"

	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/utils"
)

// Projection bucket boundaries, in weeks.
const (
	weeksPerMonth = 4.345
	weeksPerYear  = 52.14

	dayBucketMaxWeeks   = 1
	weekBucketMaxWeeks  = 8
	monthBucketMaxWeeks = 18 * weeksPerMonth
)

const (
	// goalEpsilonKg: closer than this to the goal counts as achieved.
	goalEpsilonKg = 0.05

	// flatRateEpsilonKgWeek: slower than this cannot be projected.
	flatRateEpsilonKgWeek = 0.01

	// intakeBandKcal is the half-width of the suggested intake range.
	intakeBandKcal = 100
)

// IntakeRange is a suggested daily intake band in kcal.
type IntakeRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// RateFeedback is a display verdict on the current rate versus the
// target rate. Class is a stable machine-readable label.
type RateFeedback struct {
	Text  string `json:"text"`
	Class string `json:"class"`
}

// Calculator performs goal projections. Now is injectable so "strictly
// in the future" checks are testable; nil means time.Now.
type Calculator struct {
	Now func() time.Time
}

func (c Calculator) today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	return metrics.Midnight(now())
}

// EstimatedTimeToGoal projects how long the current smoothed weekly
// rate needs to close the gap to the goal, as a display string. The
// bucket thresholds are part of the display contract.
func (c Calculator) EstimatedTimeToGoal(current, goal, weeklyRate float64) string {
	delta := goal - current
	if math.Abs(delta) < goalEpsilonKg {
		return "Goal Achieved!"
	}
	if math.Abs(weeklyRate) < flatRateEpsilonKgWeek {
		return "Trend flat"
	}
	if (delta > 0) != (weeklyRate > 0) {
		return "Trending away"
	}

	weeks := delta / weeklyRate
	switch {
	case weeks < dayBucketMaxWeeks:
		return fmt.Sprintf("~%d days", int(math.Ceil(weeks*utils.DaysPerWeek)))
	case weeks < weekBucketMaxWeeks:
		return fmt.Sprintf("~%.1f weeks", weeks)
	case weeks < monthBucketMaxWeeks:
		return fmt.Sprintf("~%.1f months", weeks/weeksPerMonth)
	default:
		return fmt.Sprintf("~%.1f years", weeks/weeksPerYear)
	}
}

// RequiredRateForGoal returns the weekly rate needed to hit goal by
// goalDate, or nil when goalDate is not strictly after today.
func (c Calculator) RequiredRateForGoal(current, goal float64, goalDate time.Time) *float64 {
	days := metrics.DaysBetween(c.today(), metrics.Midnight(goalDate))
	if days <= 0 {
		return nil
	}
	rate := (goal - current) / (float64(days) / utils.DaysPerWeek)
	return &rate
}

// RequiredNetCalories converts a weekly rate into the daily energy
// surplus or deficit it implies.
func (c Calculator) RequiredNetCalories(weeklyRate float64) float64 {
	return weeklyRate * utils.KcalsPerKg / utils.DaysPerWeek
}

// SuggestedIntakeRange centers a ±100 kcal band on the intake that
// produces the required daily surplus on top of the baseline TDEE.
func (c Calculator) SuggestedIntakeRange(baselineTDEE, weeklyRate float64) IntakeRange {
	center := baselineTDEE + c.RequiredNetCalories(weeklyRate)
	return IntakeRange{Min: center - intakeBandKcal, Max: center + intakeBandKcal}
}

// TargetRateFeedback compares the current smoothed weekly rate against
// the user's target rate.
func (c Calculator) TargetRateFeedback(currentRate, targetRate *float64) RateFeedback {
	if targetRate == nil {
		return RateFeedback{Text: "No target rate set", Class: "neutral"}
	}
	if currentRate == nil {
		return RateFeedback{Text: "No current trend yet", Class: "neutral"}
	}

	diff := *currentRate - *targetRate
	switch {
	case math.Abs(diff) <= 0.1:
		return RateFeedback{Text: "On target", Class: "good"}
	case math.Abs(diff) <= 0.25:
		if diff > 0 {
			return RateFeedback{Text: "Slightly above target rate", Class: "warn"}
		}
		return RateFeedback{Text: "Slightly below target rate", Class: "warn"}
	default:
		if diff > 0 {
			return RateFeedback{Text: "Well above target rate", Class: "bad"}
		}
		return RateFeedback{Text: "Well below target rate", Class: "bad"}
	}
}
