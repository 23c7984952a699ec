package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/weightlens/weightlens/internal/analytics/pipeline"
	"github.com/weightlens/weightlens/internal/analytics/plateau"
	"github.com/weightlens/weightlens/internal/analytics/regression"
	"github.com/weightlens/weightlens/internal/analytics/snapshot"
	"github.com/weightlens/weightlens/internal/analytics/trendchange"
)

// EnsureDirectories ensures all required directories exist
func (c *Config) EnsureDirectories() error {
	var dirs []string
	if c.Source.Type == "file" && c.Source.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Source.Path))
	}
	if c.Source.CachePath != "" {
		dirs = append(dirs, filepath.Dir(c.Source.CachePath))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// GetServerAddress returns the HTTP server listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.HTTPPort)
}

// ToPipelineConfig maps the pipeline section onto the enrichment
// pass configuration.
func (c *Config) ToPipelineConfig() pipeline.Config {
	cfg := pipeline.DefaultConfig()
	cfg.SMAWindow = c.Pipeline.SMAWindow
	cfg.BandMultiplier = c.Pipeline.BandMultiplier
	cfg.OutlierThreshold = c.Pipeline.OutlierThreshold
	cfg.RateSmoothingWindow = c.Pipeline.RateSmoothingWindow
	cfg.TDEEDiffWindow = c.Pipeline.TDEEDiffWindow
	cfg.AdaptiveWindow = c.Pipeline.AdaptiveWindow
	cfg.AdaptiveMinDataRatio = c.Pipeline.AdaptiveMinDataRatio
	return cfg.Normalize()
}

// ToSnapshotParams maps the analysis section onto the orchestrator
// parameters.
func (c *Config) ToSnapshotParams() snapshot.Params {
	p := snapshot.DefaultParams()
	p.PlateauConfig = plateau.Config{
		RateThresholdKgWeek: c.Analysis.PlateauRateThreshold,
		MinDurationWeeks:    c.Analysis.PlateauMinDurationWeeks,
	}
	p.TrendChangeConfig = trendchange.Config{
		WindowDays:         c.Analysis.TrendChangeWindowDays,
		MinSlopeDiffKgWeek: c.Analysis.TrendChangeMinSlopeDiff,
	}
	p.RegressionOptions = regression.Options{
		MinPoints: c.Analysis.RegressionMinPoints,
		Alpha:     c.Analysis.RegressionAlpha,
	}
	p.MinValidDaysTable = c.Analysis.WeeklyMinValidDays
	p.MinValidDaysCorrelation = c.Analysis.CorrelationMinValidDays
	return p
}
