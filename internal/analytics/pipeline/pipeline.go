// Package pipeline turns merged daily records into the enriched series
// the rest of the analytics consume. Each pass is a pure function from
// records to new records; none mutates its input, so a half-applied
// pipeline can never leave stale derived fields behind.
package pipeline

import (
	"github.com/weightlens/weightlens/internal/metrics"
	"github.com/weightlens/weightlens/internal/stats"
	"github.com/weightlens/weightlens/internal/utils"
)

// Config holds the pipeline tunables. Zero values are replaced by the
// defaults from DefaultConfig when passed through Normalize.
type Config struct {
	SMAWindow            int     // trailing window for weight SMA and dispersion
	BandMultiplier       float64 // stddev multiplier for the upper/lower bands
	OutlierThreshold     float64 // stddev multiplier beyond which a weight is an outlier
	RateSmoothingWindow  int     // window for smoothing the daily rate
	TDEEDiffWindow       int     // window for smoothing the TDEE difference
	AdaptiveWindow       int     // fixed trailing window for the adaptive TDEE estimator
	AdaptiveMinDataRatio float64 // minimum fraction of days with intake in the adaptive window
	KcalsPerKg           float64 // energy density of body mass change
}

// DefaultConfig returns the standard pipeline configuration.
func DefaultConfig() Config {
	return Config{
		SMAWindow:            20,
		BandMultiplier:       1.0,
		OutlierThreshold:     2.5,
		RateSmoothingWindow:  7,
		TDEEDiffWindow:       14,
		AdaptiveWindow:       28,
		AdaptiveMinDataRatio: 0.7,
		KcalsPerKg:           utils.KcalsPerKg,
	}
}

// Normalize fills unset fields with defaults.
func (c Config) Normalize() Config {
	def := DefaultConfig()
	if c.SMAWindow <= 0 {
		c.SMAWindow = def.SMAWindow
	}
	if c.BandMultiplier <= 0 {
		c.BandMultiplier = def.BandMultiplier
	}
	if c.OutlierThreshold <= 0 {
		c.OutlierThreshold = def.OutlierThreshold
	}
	if c.RateSmoothingWindow <= 0 {
		c.RateSmoothingWindow = def.RateSmoothingWindow
	}
	if c.TDEEDiffWindow <= 0 {
		c.TDEEDiffWindow = def.TDEEDiffWindow
	}
	if c.AdaptiveWindow <= 0 {
		c.AdaptiveWindow = def.AdaptiveWindow
	}
	if c.AdaptiveMinDataRatio <= 0 {
		c.AdaptiveMinDataRatio = def.AdaptiveMinDataRatio
	}
	if c.KcalsPerKg <= 0 {
		c.KcalsPerKg = def.KcalsPerKg
	}
	return c
}

// Run applies all enrichment passes in order and returns the enriched
// series. The input slice is left untouched.
func Run(records []metrics.DailyRecord, cfg Config, provider stats.Provider) []metrics.DailyRecord {
	cfg = cfg.Normalize()
	if provider == nil {
		provider = stats.Unavailable{}
	}

	out := applyBodyComposition(records)
	out = applyDispersion(out, cfg, provider)
	out = applyOutliers(out, cfg)
	out = applyRates(out, cfg)
	out = applyAdaptiveTDEE(out, cfg, provider)
	out = applySmoothedSeries(out, cfg)
	return out
}

// cloneAll copies the slice so a pass can assign derived fields
// without touching its input.
func cloneAll(records []metrics.DailyRecord) []metrics.DailyRecord {
	out := make([]metrics.DailyRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
