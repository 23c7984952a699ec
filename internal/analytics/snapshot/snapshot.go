// Package snapshot composes every analytics result for a date range
// into the named-statistics snapshot the dashboard displays. The JSON
// field names are a stable display contract.
package snapshot

import (
	"time"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/analytics/goals"
	"github.com/weightlens/weightlens/internal/analytics/plateau"
	"github.com/weightlens/weightlens/internal/analytics/regression"
	"github.com/weightlens/weightlens/internal/analytics/trendchange"
	"github.com/weightlens/weightlens/internal/analytics/weekly"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/utils"
)

// Consistency reports how many days in the range carry a given
// observation.
type Consistency struct {
	Count      int     `json:"count"`
	TotalDays  int     `json:"totalDays"`
	Percentage float64 `json:"percentage"`
}

// Snapshot is the full named-statistics view for one analysis range.
type Snapshot struct {
	StartingWeight *float64 `json:"startingWeight"`
	CurrentWeight  *float64 `json:"currentWeight"`
	MaxWeight      *float64 `json:"maxWeight"`
	MaxWeightDate  *string  `json:"maxWeightDate"`
	MinWeight      *float64 `json:"minWeight"`
	MinWeightDate  *string  `json:"minWeightDate"`
	TotalChange    *float64 `json:"totalChange"`

	CurrentSMA         *float64 `json:"currentSma"`
	CurrentLeanMassSMA *float64 `json:"currentLeanMassSma"`
	CurrentFatMassSMA  *float64 `json:"currentFatMassSma"`
	Volatility         *float64 `json:"volatility"`
	CurrentWeeklyRate  *float64 `json:"currentWeeklyRate"`

	RegressionSlopeWeekly *float64 `json:"regressionSlopeWeekly"`
	NetCalRateCorrelation *float64 `json:"netCalRateCorrelation"`

	AvgIntake          *float64 `json:"avgIntake"`
	AvgExpenditureGFit *float64 `json:"avgExpenditureGFit"`
	AvgNetBalance      *float64 `json:"avgNetBalance"`
	AvgTDEEWgtChange   *float64 `json:"avgTDEE_WgtChange"`
	AvgTDEEAdaptive    *float64 `json:"avgTDEE_Adaptive"`
	AvgTDEEDifference  *float64 `json:"avgTDEE_Difference"`

	WeightDataConsistency  Consistency `json:"weightDataConsistency"`
	CalorieDataConsistency Consistency `json:"calorieDataConsistency"`

	TargetWeight         *float64           `json:"targetWeight"`
	TargetRate           *float64           `json:"targetRate"`
	WeightToGoal         *float64           `json:"weightToGoal"`
	EstimatedTimeToGoal  *string            `json:"estimatedTimeToGoal"`
	RequiredRateForGoal  *float64           `json:"requiredRateForGoal"`
	RequiredNetCalories  *float64           `json:"requiredNetCalories"`
	SuggestedIntakeRange *goals.IntakeRange `json:"suggestedIntakeRange"`
	TargetRateFeedback   goals.RateFeedback `json:"targetRateFeedback"`

	Plateaus     []plateau.Plateau         `json:"plateaus"`
	TrendChanges []trendchange.ChangePoint `json:"trendChanges"`
	Weekly       []weekly.Stat             `json:"weeklyStats"`
	Regression   regression.Result         `json:"regression"`
}

// Params carries everything Build needs besides the records.
type Params struct {
	// Range is the analysis window; a zero range means the full series.
	Range analytics.DateRange

	// RegressionOverride, when valid, replaces the analysis range for
	// the trendline fit.
	RegressionOverride *analytics.DateRange

	// RegressionStartDate clips the regression range when it falls
	// inside the analysis range.
	RegressionStartDate *time.Time

	Goal metrics.Goal

	PlateauConfig     plateau.Config
	TrendChangeConfig trendchange.Config
	RegressionOptions regression.Options

	// MinValidDaysTable gates weeks shown in the weekly table;
	// MinValidDaysCorrelation gates weeks fed to the correlation.
	MinValidDaysTable       int
	MinValidDaysCorrelation int
}

// DefaultParams returns Params with the standard detector settings.
func DefaultParams() Params {
	return Params{
		PlateauConfig:           plateau.DefaultConfig(),
		TrendChangeConfig:       trendchange.DefaultConfig(),
		MinValidDaysTable:       3,
		MinValidDaysCorrelation: 4,
	}
}

// SelectTDEE applies the estimator priority used everywhere a single
// TDEE number is needed: adaptive, then trend-derived, then the
// externally measured average.
func SelectTDEE(adaptive, trend, measured *float64) *float64 {
	if adaptive != nil {
		return adaptive
	}
	if trend != nil {
		return trend
	}
	return measured
}

// EffectiveRegressionRange resolves the range the trendline is fitted
// over: an explicit override wins, else the analysis range clipped to
// the regression start date when that date falls inside it, else the
// analysis range itself.
func EffectiveRegressionRange(analysis analytics.DateRange, override *analytics.DateRange, startDate *time.Time) analytics.DateRange {
	if override != nil && override.Valid() {
		return *override
	}
	if startDate != nil && analysis.Contains(*startDate) {
		return analytics.DateRange{Start: *startDate, End: analysis.End}
	}
	return analysis
}

// Build assembles the snapshot. Detectors run over the full series and
// are then filtered to the range; weekly stats and averages run over
// the range only. Records must be enriched and date-ordered.
func Build(records []metrics.DailyRecord, p Params, provider stats.Provider, calc goals.Calculator) Snapshot {
	var s Snapshot
	if len(records) == 0 {
		s.Regression = regression.Fit(nil, p.RegressionOptions, provider)
		s.Plateaus = []plateau.Plateau{}
		s.TrendChanges = []trendchange.ChangePoint{}
		s.Weekly = []weekly.Stat{}
		s.TargetRateFeedback = calc.TargetRateFeedback(nil, p.Goal.TargetRate)
		return s
	}

	rng := p.Range
	if !rng.Valid() {
		rng = analytics.DateRange{Start: records[0].Date, End: records[len(records)-1].Date}
	}
	ranged := metrics.SliceRange(records, rng.Start, rng.End)

	s.fillExtrema(records)
	s.fillCurrent(records)
	s.fillAverages(ranged)
	s.fillConsistency(ranged, rng)

	regRange := EffectiveRegressionRange(rng, p.RegressionOverride, p.RegressionStartDate)
	opts := p.RegressionOptions
	start := regRange.Start
	opts.StartDate = &start
	s.Regression = regression.Fit(regression.CandidatePoints(metrics.SliceRange(records, regRange.Start, regRange.End)), opts, provider)
	if s.Regression.Slope != nil {
		wk := *s.Regression.Slope * utils.DaysPerWeek
		s.RegressionSlopeWeekly = &wk
	}

	s.Plateaus = plateau.FilterRange(plateau.Detect(records, p.PlateauConfig), rng.Start, rng.End)
	s.TrendChanges = trendchange.FilterRange(trendchange.Detect(records, p.TrendChangeConfig), rng.Start, rng.End)

	s.Weekly = weekly.Aggregate(ranged, p.MinValidDaysTable)
	s.NetCalRateCorrelation = weekly.Correlation(weekly.Aggregate(ranged, p.MinValidDaysCorrelation), provider)

	s.fillGoal(p.Goal, calc)
	return s
}

func (s *Snapshot) fillExtrema(records []metrics.DailyRecord) {
	for _, r := range records {
		if r.Weight == nil {
			continue
		}
		w := *r.Weight
		day := metrics.FormatDay(r.Date)
		if s.StartingWeight == nil {
			v := w
			s.StartingWeight = &v
		}
		v := w
		s.CurrentWeight = &v
		if s.MaxWeight == nil || w > *s.MaxWeight {
			mv, md := w, day
			s.MaxWeight, s.MaxWeightDate = &mv, &md
		}
		if s.MinWeight == nil || w < *s.MinWeight {
			mv, md := w, day
			s.MinWeight, s.MinWeightDate = &mv, &md
		}
	}
	if s.StartingWeight != nil && s.CurrentWeight != nil {
		change := *s.CurrentWeight - *s.StartingWeight
		s.TotalChange = &change
	}
}

// fillCurrent walks backward for the most recent defined value of each
// trailing statistic.
func (s *Snapshot) fillCurrent(records []metrics.DailyRecord) {
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if s.CurrentSMA == nil && r.SMA != nil {
			s.CurrentSMA = r.SMA
		}
		if s.CurrentLeanMassSMA == nil && r.LeanMassSMA != nil {
			s.CurrentLeanMassSMA = r.LeanMassSMA
		}
		if s.CurrentFatMassSMA == nil && r.FatMassSMA != nil {
			s.CurrentFatMassSMA = r.FatMassSMA
		}
		if s.Volatility == nil && r.StdDev != nil {
			s.Volatility = r.StdDev
		}
		if s.CurrentWeeklyRate == nil && r.SmoothedWeeklyRate != nil {
			s.CurrentWeeklyRate = r.SmoothedWeeklyRate
		}
	}
}

func (s *Snapshot) fillAverages(ranged []metrics.DailyRecord) {
	s.AvgIntake = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.CalorieIntake })
	s.AvgExpenditureGFit = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.MeasuredExpenditure })
	s.AvgNetBalance = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.NetBalance })
	s.AvgTDEEWgtChange = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.TrendTDEE })
	s.AvgTDEEAdaptive = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.AdaptiveTDEE })
	s.AvgTDEEDifference = meanOf(ranged, func(r metrics.DailyRecord) *float64 { return r.TDEEDifference })
}

func (s *Snapshot) fillConsistency(ranged []metrics.DailyRecord, rng analytics.DateRange) {
	totalDays := rng.Days()
	weight := Consistency{TotalDays: totalDays}
	calorie := Consistency{TotalDays: totalDays}
	for _, r := range ranged {
		if r.Weight != nil {
			weight.Count++
		}
		if r.CalorieIntake != nil {
			calorie.Count++
		}
	}
	if totalDays > 0 {
		weight.Percentage = 100 * float64(weight.Count) / float64(totalDays)
		calorie.Percentage = 100 * float64(calorie.Count) / float64(totalDays)
	}
	s.WeightDataConsistency = weight
	s.CalorieDataConsistency = calorie
}

func (s *Snapshot) fillGoal(goal metrics.Goal, calc goals.Calculator) {
	s.TargetWeight = goal.Weight
	s.TargetRate = goal.TargetRate
	s.TargetRateFeedback = calc.TargetRateFeedback(s.CurrentWeeklyRate, goal.TargetRate)

	current := s.CurrentSMA
	if current == nil {
		current = s.CurrentWeight
	}
	if goal.Weight == nil || current == nil {
		return
	}

	toGo := *goal.Weight - *current
	s.WeightToGoal = &toGo

	if s.CurrentWeeklyRate != nil {
		eta := calc.EstimatedTimeToGoal(*current, *goal.Weight, *s.CurrentWeeklyRate)
		s.EstimatedTimeToGoal = &eta
	}

	if goal.Date != nil {
		if when, err := metrics.ParseDay(*goal.Date); err == nil {
			s.RequiredRateForGoal = calc.RequiredRateForGoal(*current, *goal.Weight, when)
		}
	}
	if s.RequiredRateForGoal != nil {
		net := calc.RequiredNetCalories(*s.RequiredRateForGoal)
		s.RequiredNetCalories = &net

		baseline := SelectTDEE(s.AvgTDEEAdaptive, s.AvgTDEEWgtChange, s.AvgExpenditureGFit)
		if baseline != nil {
			band := calc.SuggestedIntakeRange(*baseline, *s.RequiredRateForGoal)
			s.SuggestedIntakeRange = &band
		}
	}
}

func meanOf(records []metrics.DailyRecord, field func(metrics.DailyRecord) *float64) *float64 {
	sum := 0.0
	n := 0
	for _, r := range records {
		if v := field(r); v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := sum / float64(n)
	return &avg
}
