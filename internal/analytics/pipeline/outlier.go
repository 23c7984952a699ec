package pipeline

import (
	"math"

	"github.com/weightlens/weightlens/internal/metrics"
)

// minStdDevForOutliers guards the z-test against near-zero dispersion,
// where any deviation would look like an arbitrary number of sigmas.
const minStdDevForOutliers = 0.01

// applyOutliers flags days whose raw weight sits further from the
// local moving average than the configured multiple of the local
// standard deviation. Days without a measured weight are never
// outliers.
func applyOutliers(records []metrics.DailyRecord, cfg Config) []metrics.DailyRecord {
	out := cloneAll(records)
	for i := range out {
		r := &out[i]
		r.IsOutlier = false

		if r.Weight == nil || r.SMA == nil || r.StdDev == nil {
			continue
		}
		if *r.StdDev <= minStdDevForOutliers {
			continue
		}

		r.IsOutlier = math.Abs(*r.Weight-*r.SMA) > cfg.OutlierThreshold*(*r.StdDev)
	}
	return out
}
