// Package regression fits a trend line to non-outlier weight points
// and attaches confidence bounds for the mean response at each point.
package regression

import (
	"math"
	"sort"
	"time"

	"github.com/weightlens/weightlens/internal/analytics"
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
)

// DefaultMinPoints is the minimum candidate count below which a fit is
// undefined rather than misleading.
const DefaultMinPoints = 7

// DefaultAlpha yields the conventional two-sided 95% confidence level.
const DefaultAlpha = 0.05

// Options controls a fit.
type Options struct {
	// StartDate, when set, drops candidate points before it.
	StartDate *time.Time

	// MinPoints overrides DefaultMinPoints when positive.
	MinPoints int

	// Alpha is the two-sided significance level; (0, 1) exclusive.
	// Zero selects DefaultAlpha.
	Alpha float64
}

// PointCI is a fitted point with optional confidence bounds. Bounds
// are nil when the fit has no spare degrees of freedom or the
// t-quantile is unavailable.
type PointCI struct {
	Date    time.Time `json:"date"`
	Value   float64   `json:"regressionValue"`
	LowerCI *float64  `json:"lowerCI,omitempty"`
	UpperCI *float64  `json:"upperCI,omitempty"`
}

// Result is the outcome of a fit. Slope and Intercept are nil when the
// fit is undefined; callers must treat that as an expected state.
type Result struct {
	Slope        *float64          `json:"slope"`
	Intercept    *float64          `json:"intercept"`
	Points       []analytics.Point `json:"points"`
	PointsWithCI []PointCI         `json:"pointsWithCI"`
}

// undefined is the canonical empty result.
func undefined() Result {
	return Result{Points: []analytics.Point{}, PointsWithCI: []PointCI{}}
}

// CandidatePoints extracts the fit candidates from an enriched record
// slice: days with a measured weight that were not flagged as outliers.
func CandidatePoints(records []metrics.DailyRecord) []analytics.Point {
	points := make([]analytics.Point, 0, len(records))
	for _, r := range records {
		if r.Weight == nil || r.IsOutlier {
			continue
		}
		points = append(points, analytics.Point{Date: r.Date, Value: *r.Weight})
	}
	return points
}

// Fit performs ordinary least squares over the candidate points and
// computes per-point confidence bounds for the mean response. This is
// deliberately not a prediction interval: the standard error carries
// no +1 term, so the band brackets the trend line, not future
// observations.
func Fit(points []analytics.Point, opts Options, provider stats.Provider) Result {
	if provider == nil {
		provider = stats.Unavailable{}
	}
	minPoints := opts.MinPoints
	if minPoints <= 0 {
		minPoints = DefaultMinPoints
	}
	alpha := opts.Alpha
	if alpha <= 0 || alpha >= 1 {
		alpha = DefaultAlpha
	}

	filtered := make([]analytics.Point, 0, len(points))
	for _, p := range points {
		if opts.StartDate != nil && p.Date.Before(*opts.StartDate) {
			continue
		}
		filtered = append(filtered, p)
	}
	if len(filtered) < minPoints {
		return undefined()
	}

	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Date.Before(filtered[j].Date)
	})

	n := len(filtered)
	first := filtered[0].Date
	xs := make([]float64, n)
	ys := make([]float64, n)
	for i, p := range filtered {
		xs[i] = float64(metrics.DaysBetween(first, p.Date))
		ys[i] = p.Value
	}

	slope, intercept, ok := provider.LinearRegression(xs, ys)
	if !ok {
		return undefined()
	}

	result := Result{
		Slope:        &slope,
		Intercept:    &intercept,
		Points:       make([]analytics.Point, n),
		PointsWithCI: make([]PointCI, n),
	}

	sse := 0.0
	for i := range xs {
		fitted := slope*xs[i] + intercept
		result.Points[i] = analytics.Point{Date: filtered[i].Date, Value: fitted}
		result.PointsWithCI[i] = PointCI{Date: filtered[i].Date, Value: fitted}
		residual := ys[i] - fitted
		sse += residual * residual
	}

	df := float64(n - 2)
	if df <= 0 {
		return result
	}

	tValue, ok := provider.TQuantile(1-alpha/2, df)
	if !ok {
		return result
	}

	see := math.Sqrt(sse / df)
	meanX, _ := provider.Mean(xs)
	sxx := 0.0
	for _, x := range xs {
		d := x - meanX
		sxx += d * d
	}

	for i := range result.PointsWithCI {
		var seMean float64
		if sxx == 0 {
			seMean = see * math.Sqrt(1/float64(n))
		} else {
			d := xs[i] - meanX
			seMean = see * math.Sqrt(1/float64(n)+d*d/sxx)
		}
		margin := tValue * seMean
		lower := result.PointsWithCI[i].Value - margin
		upper := result.PointsWithCI[i].Value + margin
		result.PointsWithCI[i].LowerCI = &lower
		result.PointsWithCI[i].UpperCI = &upper
	}

	return result
}
