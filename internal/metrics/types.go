// Package metrics defines the daily-record data model shared by the
// analytics pipeline and the HTTP surface. Every optional or derived
// field is a pointer: nil means "no data", which is never the same
// thing as zero.
package metrics

import "time"

// DailyRecord is one calendar day of merged observations plus the
// derived fields populated by the analytics pipeline. Records are
// treated as immutable; pipeline passes copy before writing.
type DailyRecord struct {
	Date time.Time `json:"date"`

	// Raw observations (absent from a source map => nil).
	Weight              *float64 `json:"weight,omitempty"`
	BodyFatPercent      *float64 `json:"bodyFatPercent,omitempty"`
	CalorieIntake       *float64 `json:"calorieIntake,omitempty"`
	MeasuredExpenditure *float64 `json:"measuredExpenditure,omitempty"`

	// Derived at merge time.
	NetBalance *float64 `json:"netBalance,omitempty"`

	// Derived by the pipeline passes.
	LeanMass           *float64 `json:"leanMass,omitempty"`
	FatMass            *float64 `json:"fatMass,omitempty"`
	SMA                *float64 `json:"sma,omitempty"`
	StdDev             *float64 `json:"stdDev,omitempty"`
	LowerBound         *float64 `json:"lowerBound,omitempty"`
	UpperBound         *float64 `json:"upperBound,omitempty"`
	LeanMassSMA        *float64 `json:"leanMassSma,omitempty"`
	FatMassSMA         *float64 `json:"fatMassSma,omitempty"`
	IsOutlier          bool     `json:"isOutlier"`
	DailyRate          *float64 `json:"dailyRate,omitempty"`
	TrendTDEE          *float64 `json:"trendTDEE,omitempty"`
	AdaptiveTDEE       *float64 `json:"adaptiveTDEE,omitempty"`
	SmoothedWeeklyRate *float64 `json:"smoothedWeeklyRate,omitempty"`
	TDEEDifference     *float64 `json:"tdeeDifference,omitempty"`
	AvgTDEEDifference  *float64 `json:"avgTdeeDifference,omitempty"`
}

// Clone returns a shallow copy of r. Pointer fields still alias the
// same values, which is safe because values are never mutated through
// them; passes that change a field assign a fresh pointer.
func (r DailyRecord) Clone() DailyRecord {
	return r
}

// Sources holds the four independent date-keyed observation maps
// supplied by the external data source. Keys are YYYY-MM-DD strings.
type Sources struct {
	Weights             map[string]float64 `json:"weights"`
	CalorieIntake       map[string]float64 `json:"calorieIntake"`
	MeasuredExpenditure map[string]float64 `json:"measuredExpenditure"`
	BodyFat             map[string]float64 `json:"bodyFat"`
}

// IsEmpty reports whether no source map contains any entry.
func (s Sources) IsEmpty() bool {
	return len(s.Weights) == 0 && len(s.CalorieIntake) == 0 &&
		len(s.MeasuredExpenditure) == 0 && len(s.BodyFat) == 0
}
