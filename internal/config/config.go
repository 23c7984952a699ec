package config

import (
	"fmt"
	"time"

	"github.com/weightlens/weightlens/internal/logging"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Source   SourceConfig   `mapstructure:"source"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Store    StoreConfig    `mapstructure:"store"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Logging  logging.Config `mapstructure:"logging"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`             // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort        int           `mapstructure:"http_port"`        // HTTP server port
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`     // Fiber read timeout
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`    // Fiber write timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"` // Graceful shutdown deadline
}

// SourceConfig describes where the observation maps come from
type SourceConfig struct {
	Type         string        `mapstructure:"type"`          // file (default) or http
	Path         string        `mapstructure:"path"`          // JSON file path when type=file
	URL          string        `mapstructure:"url"`           // endpoint when type=http
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"` // HTTP fetch timeout
	CachePath    string        `mapstructure:"cache_path"`    // snappy-compressed last-good-fetch cache; empty disables
}

// PipelineConfig holds the enrichment-pass tunables
type PipelineConfig struct {
	SMAWindow            int     `mapstructure:"sma_window"`              // trailing window for weight SMA and dispersion
	BandMultiplier       float64 `mapstructure:"band_multiplier"`         // stddev multiplier for the bands
	OutlierThreshold     float64 `mapstructure:"outlier_threshold"`       // stddev multiplier for outlier flagging
	RateSmoothingWindow  int     `mapstructure:"rate_smoothing_window"`   // window for smoothing the daily rate
	TDEEDiffWindow       int     `mapstructure:"tdee_diff_window"`        // window for smoothing the TDEE difference
	AdaptiveWindow       int     `mapstructure:"adaptive_window"`         // trailing window for the adaptive TDEE estimator
	AdaptiveMinDataRatio float64 `mapstructure:"adaptive_min_data_ratio"` // minimum intake coverage in the adaptive window
}

// AnalysisConfig holds the detector and regression tunables
type AnalysisConfig struct {
	PlateauRateThreshold     float64 `mapstructure:"plateau_rate_threshold"`      // kg/week below which a day is flat
	PlateauMinDurationWeeks  float64 `mapstructure:"plateau_min_duration_weeks"`  // minimum flat-run length
	TrendChangeWindowDays    int     `mapstructure:"trend_change_window_days"`    // records on each side of a candidate
	TrendChangeMinSlopeDiff  float64 `mapstructure:"trend_change_min_slope_diff"` // kg/week slope-shift threshold
	RegressionMinPoints      int     `mapstructure:"regression_min_points"`       // minimum candidate points for a fit
	RegressionAlpha          float64 `mapstructure:"regression_alpha"`            // two-sided significance level
	WeeklyMinValidDays       int     `mapstructure:"weekly_min_valid_days"`       // gate for the weekly table
	CorrelationMinValidDays  int     `mapstructure:"correlation_min_valid_days"`  // stricter gate for the correlation
}

// StoreConfig represents goal persistence configuration
type StoreConfig struct {
	Type      string `mapstructure:"type"`       // memory (default) or redis
	URL       string `mapstructure:"url"`        // redis URL (e.g., redis://localhost:6379/0)
	KeyPrefix string `mapstructure:"key_prefix"` // namespace for stored keys
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source config: %w", err)
	}

	if err := c.Pipeline.Validate(); err != nil {
		return fmt.Errorf("pipeline config: %w", err)
	}

	if err := c.Analysis.Validate(); err != nil {
		return fmt.Errorf("analysis config: %w", err)
	}

	if err := c.Store.Validate(); err != nil {
		return fmt.Errorf("store config: %w", err)
	}

	if err := validateLogging(c.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}

	return nil
}

// Validate validates source configuration
func (c *SourceConfig) Validate() error {
	switch c.Type {
	case "file":
		if c.Path == "" {
			return fmt.Errorf("source.path is required for type 'file'")
		}
	case "http":
		if c.URL == "" {
			return fmt.Errorf("source.url is required for type 'http'")
		}
	default:
		return fmt.Errorf("source.type must be 'file' or 'http'")
	}

	return nil
}

// Validate validates pipeline configuration
func (c *PipelineConfig) Validate() error {
	if c.SMAWindow < 1 {
		return fmt.Errorf("pipeline.sma_window must be at least 1")
	}

	if c.OutlierThreshold <= 0 {
		return fmt.Errorf("pipeline.outlier_threshold must be positive")
	}

	if c.AdaptiveMinDataRatio <= 0 || c.AdaptiveMinDataRatio > 1 {
		return fmt.Errorf("pipeline.adaptive_min_data_ratio must be in (0, 1]")
	}

	return nil
}

// Validate validates analysis configuration
func (c *AnalysisConfig) Validate() error {
	if c.PlateauRateThreshold <= 0 {
		return fmt.Errorf("analysis.plateau_rate_threshold must be positive")
	}

	if c.RegressionMinPoints < 3 {
		return fmt.Errorf("analysis.regression_min_points must be at least 3")
	}

	if c.RegressionAlpha <= 0 || c.RegressionAlpha >= 1 {
		return fmt.Errorf("analysis.regression_alpha must be in (0, 1)")
	}

	if c.WeeklyMinValidDays < 1 || c.WeeklyMinValidDays > 7 {
		return fmt.Errorf("analysis.weekly_min_valid_days must be in [1, 7]")
	}

	return nil
}

// Validate validates store configuration
func (c *StoreConfig) Validate() error {
	switch c.Type {
	case "memory":
	case "redis":
		if c.URL == "" {
			return fmt.Errorf("store.url is required for type 'redis'")
		}
	default:
		return fmt.Errorf("store.type must be 'memory' or 'redis'")
	}

	return nil
}

func validateLogging(c logging.Config) error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
