package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/weightlens/weightlens/internal/logging"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("./config")        // Alternative config directory
		v.AddConfigPath("/etc/weightlens") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides
	v.SetEnvPrefix("WEIGHTLENS")
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.http_port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "15s")

	// Source defaults
	v.SetDefault("source.type", "file")
	v.SetDefault("source.path", "./data/observations.json")
	v.SetDefault("source.fetch_timeout", "30s")
	v.SetDefault("source.cache_path", "./data/observations.cache")

	// Pipeline defaults
	v.SetDefault("pipeline.sma_window", 20)
	v.SetDefault("pipeline.band_multiplier", 1.0)
	v.SetDefault("pipeline.outlier_threshold", 2.5)
	v.SetDefault("pipeline.rate_smoothing_window", 7)
	v.SetDefault("pipeline.tdee_diff_window", 14)
	v.SetDefault("pipeline.adaptive_window", 28)
	v.SetDefault("pipeline.adaptive_min_data_ratio", 0.7)

	// Analysis defaults
	v.SetDefault("analysis.plateau_rate_threshold", 0.07)
	v.SetDefault("analysis.plateau_min_duration_weeks", 3)
	v.SetDefault("analysis.trend_change_window_days", 14)
	v.SetDefault("analysis.trend_change_min_slope_diff", 0.25)
	v.SetDefault("analysis.regression_min_points", 7)
	v.SetDefault("analysis.regression_alpha", 0.05)
	v.SetDefault("analysis.weekly_min_valid_days", 3)
	v.SetDefault("analysis.correlation_min_valid_days", 4)

	// Store defaults
	v.SetDefault("store.type", "memory")
	v.SetDefault("store.key_prefix", "weightlens")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output_path", "stdout")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			HTTPPort:        8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Source: SourceConfig{
			Type:         "file",
			Path:         "./data/observations.json",
			FetchTimeout: 30 * time.Second,
			CachePath:    "./data/observations.cache",
		},
		Pipeline: PipelineConfig{
			SMAWindow:            20,
			BandMultiplier:       1.0,
			OutlierThreshold:     2.5,
			RateSmoothingWindow:  7,
			TDEEDiffWindow:       14,
			AdaptiveWindow:       28,
			AdaptiveMinDataRatio: 0.7,
		},
		Analysis: AnalysisConfig{
			PlateauRateThreshold:    0.07,
			PlateauMinDurationWeeks: 3,
			TrendChangeWindowDays:   14,
			TrendChangeMinSlopeDiff: 0.25,
			RegressionMinPoints:     7,
			RegressionAlpha:         0.05,
			WeeklyMinValidDays:      3,
			CorrelationMinValidDays: 4,
		},
		Store: StoreConfig{
			Type:      "memory",
			KeyPrefix: "weightlens",
		},
		Logging: logging.Config{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
