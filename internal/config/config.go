package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"arrowview/internal/errors"
)

// Quantile interpolation modes
const (
	QuantileLinear  = "linear"
	QuantileNearest = "nearest"
)

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig
	View     ViewConfig
	Describe DescribeConfig
	Terminal TerminalConfig
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

// ViewConfig holds defaults for the head/info views
type ViewConfig struct {
	HeadRows int
	Sheet    string // worksheet for .xlsx inputs, empty for the first
}

// DescribeConfig holds descriptive statistics settings
type DescribeConfig struct {
	Workers   int
	Precision int
	Quantile  string
}

// TerminalConfig holds output sizing settings. Width 0 means probe stdout.
type TerminalConfig struct {
	Width int
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "WARN"),
		},
		View: ViewConfig{
			HeadRows: getEnvIntOrDefault("ARROWVIEW_HEAD_ROWS", 5),
			Sheet:    getEnvOrDefault("ARROWVIEW_SHEET", ""),
		},
		Describe: DescribeConfig{
			Workers:   getEnvIntOrDefault("ARROWVIEW_WORKERS", runtime.NumCPU()),
			Precision: getEnvIntOrDefault("ARROWVIEW_PRECISION", 3),
			Quantile:  strings.ToLower(getEnvOrDefault("ARROWVIEW_QUANTILE", QuantileLinear)),
		},
		Terminal: TerminalConfig{
			Width: getEnvIntOrDefault("ARROWVIEW_WIDTH", 0),
		},
	}

	if err := Validate(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// Validate checks value ranges; flags overriding a loaded config are
// validated again through it.
func Validate(config *Config) error {
	if config.View.HeadRows < 0 {
		return errors.ConfigInvalid("head rows must be non-negative")
	}
	if config.Describe.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if config.Describe.Precision < 0 || config.Describe.Precision > 15 {
		return errors.ConfigInvalid("precision must be between 0 and 15")
	}
	switch config.Describe.Quantile {
	case QuantileLinear, QuantileNearest:
	default:
		return errors.ConfigInvalid("quantile must be linear or nearest, got " + strconv.Quote(config.Describe.Quantile))
	}
	if config.Terminal.Width < 0 {
		return errors.ConfigInvalid("width must be non-negative")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
