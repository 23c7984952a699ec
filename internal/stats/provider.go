package stats

import (
	"math"

	montana "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Numeric is the production Provider, backed by montanaflynn/stats for
// the scalar summaries and gonum for regression, correlation and the
// Student-t quantile.
type Numeric struct{}

// NewProvider returns the production statistics provider.
func NewProvider() Numeric {
	return Numeric{}
}

// Mean returns the arithmetic mean of xs.
func (Numeric) Mean(xs []float64) (float64, bool) {
	if len(xs) == 0 {
		return 0, false
	}
	m, err := montana.Mean(xs)
	if err != nil || math.IsNaN(m) {
		return 0, false
	}
	return m, true
}

// StdDev returns the sample standard deviation of xs.
func (Numeric) StdDev(xs []float64) (float64, bool) {
	if len(xs) < 2 {
		return 0, false
	}
	sd, err := montana.StandardDeviationSample(xs)
	if err != nil || math.IsNaN(sd) {
		return 0, false
	}
	return sd, true
}

// Correlation returns the Pearson correlation of xs and ys.
func (Numeric) Correlation(xs, ys []float64) (float64, bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, false
	}
	r := stat.Correlation(xs, ys, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

// LinearRegression fits y = intercept + slope*x by ordinary least squares.
func (Numeric) LinearRegression(xs, ys []float64) (slope, intercept float64, ok bool) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, 0, false
	}
	intercept, slope = stat.LinearRegression(xs, ys, nil, false)
	if math.IsNaN(slope) || math.IsNaN(intercept) ||
		math.IsInf(slope, 0) || math.IsInf(intercept, 0) {
		return 0, 0, false
	}
	return slope, intercept, true
}

// TQuantile returns the Student-t quantile at probability p for df
// degrees of freedom.
func (Numeric) TQuantile(p float64, df float64) (float64, bool) {
	if df <= 0 || p <= 0 || p >= 1 {
		return 0, false
	}
	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	q := dist.Quantile(p)
	if math.IsNaN(q) || math.IsInf(q, 0) {
		return 0, false
	}
	return q, true
}

// Unavailable is a graceful-degradation stub used when no statistics
// capability is wired. Every method reports ok=false, so dependent
// analytics produce nil results rather than failing.
type Unavailable struct{}

func (Unavailable) Mean([]float64) (float64, bool)             { return 0, false }
func (Unavailable) StdDev([]float64) (float64, bool)           { return 0, false }
func (Unavailable) Correlation(_, _ []float64) (float64, bool) { return 0, false }
func (Unavailable) LinearRegression(_, _ []float64) (slope, intercept float64, ok bool) {
	return 0, 0, false
}
func (Unavailable) TQuantile(float64, float64) (float64, bool) { return 0, false }
