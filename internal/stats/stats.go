// Package stats defines the statistics capability consumed by the
// analytics packages. The capability is injected as an interface so
// callers degrade to "undefined" results when it is absent instead of
// crashing mid-pipeline.
package stats

// Provider supplies the numeric routines the pipeline needs. Every
// method reports ok=false when the input is insufficient (or the
// provider is a degradation stub); callers must treat that as a valid
// "no result" state, never as an error.
type Provider interface {
	// Mean returns the arithmetic mean of xs.
	Mean(xs []float64) (float64, bool)

	// StdDev returns the sample standard deviation of xs. Requires at
	// least two values.
	StdDev(xs []float64) (float64, bool)

	// Correlation returns the sample (Pearson) correlation of the
	// paired series xs, ys.
	Correlation(xs, ys []float64) (float64, bool)

	// LinearRegression fits y = intercept + slope*x by ordinary least
	// squares.
	LinearRegression(xs, ys []float64) (slope, intercept float64, ok bool)

	// TQuantile returns the Student-t quantile at probability p for
	// the given degrees of freedom.
	TQuantile(p float64, df float64) (float64, bool)
}
