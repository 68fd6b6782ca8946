// Package config loads runtime configuration from a config file, the
// environment, and an optional .env file, in ascending precedence of
// defaults < file < environment.
package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/fennecworks/dealscope/pkg/errors"
)

// Defaults.
const (
	DefaultThreshold = 0.85
	DefaultSchedule  = "0 6 * * *" // daily at 06:00
	DefaultLogLevel  = "info"
)

// Config is the full runtime configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL DSN; empty disables persistence.
	DatabaseURL string `mapstructure:"database_url"`

	// Schedule is the cron expression for recurring collection runs.
	Schedule string `mapstructure:"schedule"`

	// Threshold is the name-similarity cutoff for merging, in (0, 1].
	Threshold float64 `mapstructure:"threshold"`

	// ReferenceYear overrides the year used for company-age features;
	// zero means the current year.
	ReferenceYear int `mapstructure:"reference_year"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// BatchFiles are extra JSON/YAML batch files collected on every run.
	BatchFiles []string `mapstructure:"batch_files"`
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first if present; cfgFile optionally names an
// explicit config file, otherwise dealscope.yaml is searched for in the
// working directory.
func Load(cfgFile string) (Config, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("schedule", DefaultSchedule)
	v.SetDefault("threshold", DefaultThreshold)
	v.SetDefault("log_level", DefaultLogLevel)
	// Zero-value defaults register the keys so AutomaticEnv can fill them.
	v.SetDefault("database_url", "")
	v.SetDefault("log_format", "")
	v.SetDefault("reference_year", 0)
	v.SetDefault("batch_files", []string{})

	v.SetEnvPrefix("DEALSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, &errors.ConfigError{
				Component: "config", Message: "read " + cfgFile, Err: err,
			}
		}
	} else {
		v.SetConfigName("dealscope")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// Missing default config file is fine; anything else is not.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, &errors.ConfigError{
					Component: "config", Message: "read dealscope.yaml", Err: err,
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, &errors.ConfigError{
			Component: "config", Message: "unmarshal", Err: err,
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Threshold <= 0 || c.Threshold > 1 {
		return errors.NewValidationError("threshold", c.Threshold, "must be in (0, 1]")
	}
	if c.Schedule == "" {
		return errors.NewValidationError("schedule", c.Schedule, "must not be empty")
	}
	return nil
}
