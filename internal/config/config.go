// Package config loads the forecast-eval command configuration from defaults, an optional file
// and FORECAST_EVAL_ prefixed environment variables.
package config

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-forecast-eval/linear"
)

var (
	ErrInvalidLogFormat = errors.New("invalid logging format")
	ErrInvalidLogLevel  = errors.New("invalid logging level")
	ErrEmptyLogOutput   = errors.New("empty logging output")
)

// Config is the complete command configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Model   ModelConfig   `mapstructure:"model"`
	Plot    PlotConfig    `mapstructure:"plot"`
}

// LoggingConfig selects the zerolog level, encoding and destination.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
	Output string `mapstructure:"output"` // stdout, stderr or a file path
}

// ModelConfig mirrors linear.Options. Holidays are names accepted by linear.USHolidays.
type ModelConfig struct {
	Growth         bool     `mapstructure:"growth"`
	DailyOrders    int      `mapstructure:"daily_orders"`
	WeeklyOrders   int      `mapstructure:"weekly_orders"`
	YearlyOrders   int      `mapstructure:"yearly_orders"`
	Holidays       []string `mapstructure:"holidays"`
	Regressors     []string `mapstructure:"regressors"`
	IntervalZscore float64  `mapstructure:"interval_zscore"`
}

type PlotConfig struct {
	Title string `mapstructure:"title"`
}

// DefaultConfig returns the configuration used when no file or environment overrides exist.
func DefaultConfig() *Config {
	opt := linear.NewDefaultOptions()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
		Model: ModelConfig{
			Growth:         opt.Growth,
			DailyOrders:    opt.DailyOrders,
			WeeklyOrders:   opt.WeeklyOrders,
			YearlyOrders:   opt.YearlyOrders,
			IntervalZscore: opt.IntervalZscore,
		},
		Plot: PlotConfig{
			Title: "Forecast Fit",
		},
	}
}

// Validate checks values that cannot be caught by unmarshalling.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%q, %w", c.Logging.Format, ErrInvalidLogFormat)
	}
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("%q, %w", c.Logging.Level, ErrInvalidLogLevel)
	}
	if c.Logging.Output == "" {
		return ErrEmptyLogOutput
	}
	if _, err := c.Model.Options(); err != nil {
		return err
	}
	return nil
}

// Options converts the model configuration into linear model options.
func (m ModelConfig) Options() (*linear.Options, error) {
	holidays, err := linear.USHolidays(m.Holidays...)
	if err != nil {
		return nil, err
	}
	opt := &linear.Options{
		Growth:         m.Growth,
		DailyOrders:    m.DailyOrders,
		WeeklyOrders:   m.WeeklyOrders,
		YearlyOrders:   m.YearlyOrders,
		Holidays:       holidays,
		Regressors:     m.Regressors,
		IntervalZscore: m.IntervalZscore,
	}
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	return opt, nil
}
