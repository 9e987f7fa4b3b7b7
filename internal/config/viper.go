// Package config provides Viper-based hierarchical configuration management
package config

import (
	"errors"
	"fmt"
	"strings"

	"fjacquet/taxcalc/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by the configuration.
const EnvPrefix = "TAXCALC"

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// TaxConfig selects the rule set and how amounts are presented.
type TaxConfig struct {
	RulesFile      string `mapstructure:"rules_file" yaml:"rules_file"`
	CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
}

// CSVConfig controls batch CSV input and output.
type CSVConfig struct {
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
}

// BatchConfig controls batch processing.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Port int    `mapstructure:"port" yaml:"port"`
	Mode string `mapstructure:"mode" yaml:"mode"`
}

// Config represents the complete application configuration
type Config struct {
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	Tax    TaxConfig    `mapstructure:"tax" yaml:"tax"`
	CSV    CSVConfig    `mapstructure:"csv" yaml:"csv"`
	Batch  BatchConfig  `mapstructure:"batch" yaml:"batch"`
	Server ServerConfig `mapstructure:"server" yaml:"server"`
}

// InitializeConfig loads configuration from defaults, the first config.yaml found in the
// standard locations, and TAXCALC_* environment variables, in increasing precedence.
func InitializeConfig() (*Config, error) {
	return InitializeConfigFromFile("")
}

// InitializeConfigFromFile is InitializeConfig with an explicit config file. When path is
// empty the standard locations are searched and a missing file is not an error.
func InitializeConfigFromFile(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.taxcalc")
		v.AddConfigPath(".taxcalc")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns the configuration used when nothing overrides the defaults.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	_ = v.Unmarshal(&config)
	return &config
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("tax.rules_file", "")
	v.SetDefault("tax.currency_symbol", "R")

	v.SetDefault("csv.delimiter", ",")

	v.SetDefault("batch.workers", 4)

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
}

// Validate checks a configuration that was modified after loading, for example by
// command-line overrides.
func (c *Config) Validate() error {
	if err := validateConfig(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Batch.Workers < 1 || config.Batch.Workers > 256 {
		return fmt.Errorf("batch.workers must be between 1 and 256, got: %d", config.Batch.Workers)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	switch config.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %s (must be 'debug', 'release' or 'test')", config.Server.Mode)
	}

	return nil
}

// ConfigureLoggingFromConfig builds the application logger from the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	return logging.NewLogrusLogger(config.Log.Level, config.Log.Format)
}
