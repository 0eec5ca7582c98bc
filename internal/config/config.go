// Package config defines the tool's configuration and how it is loaded.
//
// Values are layered: defaults from New, then an optional YAML file, then
// PERFDASH_ environment variables.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// PageSize is the number of table rows per page.
	PageSize int `koanf:"page_size"`

	// IngestConcurrency bounds how many input files are parsed at once.
	IngestConcurrency int `koanf:"ingest_concurrency"`

	// Daily score weights.
	ScoreBaseWeight    float64 `koanf:"score_base_weight"`
	ScoreQualityWeight float64 `koanf:"score_quality_weight"`
	ScoreErrorWeight   float64 `koanf:"score_error_weight"`
	ScoreMaxQuality    int     `koanf:"score_max_quality"`

	// MetricsFile, when set, receives a Prometheus textfile dump on exit.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		PageSize:           10,
		IngestConcurrency:  runtime.NumCPU(),
		ScoreBaseWeight:    0.4,
		ScoreQualityWeight: 0.5,
		ScoreErrorWeight:   0.1,
		ScoreMaxQuality:    10,
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("%w: unknown log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("%w: page_size must be positive", ErrInvalidConfig)
	}
	if c.IngestConcurrency <= 0 {
		return fmt.Errorf("%w: ingest_concurrency must be positive", ErrInvalidConfig)
	}
	if c.ScoreBaseWeight < 0 || c.ScoreQualityWeight < 0 || c.ScoreErrorWeight < 0 {
		return fmt.Errorf("%w: score weights must not be negative", ErrInvalidConfig)
	}
	if c.ScoreMaxQuality <= 0 {
		return fmt.Errorf("%w: score_max_quality must be positive", ErrInvalidConfig)
	}
	return nil
}
