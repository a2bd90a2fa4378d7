package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "FORECAST_EVAL"

// Load reads configuration from configPath, or from forecast-eval.yaml in the working directory
// or ./config when no path is given. A missing default file is not an error.
func Load(configPath string) (*Config, error) {
	return LoadViper(viper.New(), configPath)
}

// LoadViper loads into a caller provided viper instance so command flags bound to it take
// precedence over the file and environment.
func LoadViper(v *viper.Viper, configPath string) (*Config, error) {
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("forecast-eval")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config, %w", err)
		}
	}
	return parseConfig(v)
}

func setDefaults(v *viper.Viper) {
	def := DefaultConfig()

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("logging.output", def.Logging.Output)

	v.SetDefault("model.growth", def.Model.Growth)
	v.SetDefault("model.daily_orders", def.Model.DailyOrders)
	v.SetDefault("model.weekly_orders", def.Model.WeeklyOrders)
	v.SetDefault("model.yearly_orders", def.Model.YearlyOrders)
	v.SetDefault("model.holidays", []string{})
	v.SetDefault("model.regressors", []string{})
	v.SetDefault("model.interval_zscore", def.Model.IntervalZscore)

	v.SetDefault("plot.title", def.Plot.Title)
}

func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config, %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config, %w", err)
	}
	return &cfg, nil
}
