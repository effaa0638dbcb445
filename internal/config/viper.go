// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "CURFMT"

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Currency struct {
		Code              string `mapstructure:"code" yaml:"code"`
		Position          string `mapstructure:"position" yaml:"position"`
		DecimalPlaces     int    `mapstructure:"decimal_places" yaml:"decimal_places"`
		ThousandSeparator string `mapstructure:"thousand_separator" yaml:"thousand_separator"`
		DecimalSeparator  string `mapstructure:"decimal_separator" yaml:"decimal_separator"`
	} `mapstructure:"currency" yaml:"currency"`

	Settings struct {
		File string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"settings" yaml:"settings"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Compact struct {
		Decimals int `mapstructure:"decimals" yaml:"decimals"`
	} `mapstructure:"compact" yaml:"compact"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	return InitializeConfigFile("")
}

// InitializeConfigFile behaves like InitializeConfig but reads the given file
// instead of searching the standard locations. An empty path searches.
func InitializeConfigFile(path string) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.currency-format")
		v.AddConfigPath(".currency-format")
		v.AddConfigPath(".")
	}

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional unless explicitly given)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			if path != "" {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
			logging.GetLogger().Warn("Error reading config file, using defaults",
				logging.Field{Key: logging.FieldFile, Value: v.ConfigFileUsed()},
				logging.Field{Key: logging.FieldError, Value: err.Error()})
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Currency defaults
	def := currencyfmt.DefaultConfig()
	v.SetDefault("currency.code", def.CurrencyCode)
	v.SetDefault("currency.position", string(def.SymbolPosition))
	v.SetDefault("currency.decimal_places", def.DecimalPlaces)
	v.SetDefault("currency.thousand_separator", def.ThousandSeparator)
	v.SetDefault("currency.decimal_separator", def.DecimalSeparator)

	// Settings store defaults
	v.SetDefault("settings.file", "settings.yaml")

	// CSV defaults
	v.SetDefault("csv.delimiter", ",")

	// Compact rendering defaults
	v.SetDefault("compact.decimals", 2)
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	// Validate log level
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	// Validate log format
	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	// Validate CSV delimiter
	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Compact.Decimals < 0 || config.Compact.Decimals > currencyfmt.MaxDecimalPlaces {
		return fmt.Errorf("compact.decimals must be between 0 and %d, got: %d",
			currencyfmt.MaxDecimalPlaces, config.Compact.Decimals)
	}

	if config.Settings.File == "" {
		return fmt.Errorf("settings.file must not be empty")
	}

	// Currency block uses the formatter's own rules
	return config.FormatterConfig().Validate()
}

// FormatterConfig returns the base formatter configuration described by the
// currency block.
func (c *Config) FormatterConfig() currencyfmt.Config {
	return currencyfmt.Config{
		CurrencyCode:      strings.ToUpper(strings.TrimSpace(c.Currency.Code)),
		SymbolPosition:    currencyfmt.ParsePosition(c.Currency.Position),
		DecimalPlaces:     c.Currency.DecimalPlaces,
		ThousandSeparator: c.Currency.ThousandSeparator,
		DecimalSeparator:  c.Currency.DecimalSeparator,
	}
}

// CSVDelimiter returns the configured delimiter as a rune.
func (c *Config) CSVDelimiter() rune {
	if c.CSV.Delimiter == "" {
		return ','
	}
	return rune(c.CSV.Delimiter[0])
}

// ConfigureLoggingFromConfig builds the application logger from the log block
// and installs it as the package default.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	logger := logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
	logging.SetLogger(logger)
	return logger
}
