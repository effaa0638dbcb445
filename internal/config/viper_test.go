package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/formaterror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, "USD", config.Currency.Code)
	assert.Equal(t, "left", config.Currency.Position)
	assert.Equal(t, 2, config.Currency.DecimalPlaces)
	assert.Equal(t, ",", config.Currency.ThousandSeparator)
	assert.Equal(t, ".", config.Currency.DecimalSeparator)
	assert.Equal(t, "settings.yaml", config.Settings.File)
	assert.Equal(t, ",", config.CSV.Delimiter)
	assert.Equal(t, 2, config.Compact.Decimals)

	assert.Equal(t, currencyfmt.DefaultConfig(), config.FormatterConfig())
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	testEnvVars := map[string]string{
		"CURFMT_LOG_LEVEL":                   "debug",
		"CURFMT_LOG_FORMAT":                  "json",
		"CURFMT_CURRENCY_CODE":               "eur",
		"CURFMT_CURRENCY_POSITION":           "right_space",
		"CURFMT_CURRENCY_DECIMAL_PLACES":     "3",
		"CURFMT_CURRENCY_THOUSAND_SEPARATOR": ".",
		"CURFMT_CURRENCY_DECIMAL_SEPARATOR":  ",",
		"CURFMT_CSV_DELIMITER":               ";",
		"CURFMT_COMPACT_DECIMALS":            "1",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ";", config.CSV.Delimiter)
	assert.Equal(t, ';', config.CSVDelimiter())
	assert.Equal(t, 1, config.Compact.Decimals)

	fc := config.FormatterConfig()
	assert.Equal(t, "EUR", fc.CurrencyCode)
	assert.Equal(t, currencyfmt.PositionRightSpace, fc.SymbolPosition)
	assert.Equal(t, 3, fc.DecimalPlaces)
	assert.Equal(t, ".", fc.ThousandSeparator)
	assert.Equal(t, ",", fc.DecimalSeparator)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
  format: "json"
currency:
  code: "CHF"
  position: "left_space"
  thousand_separator: "'"
csv:
  delimiter: "|"
settings:
  file: "prefs/users.yaml"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "|", config.CSV.Delimiter)
	assert.Equal(t, "prefs/users.yaml", config.Settings.File)
	assert.Equal(t, "CHF", config.Currency.Code)
	assert.Equal(t, "'", config.Currency.ThousandSeparator)
	assert.Equal(t, 2, config.Currency.DecimalPlaces)

	f, err := currencyfmt.New(config.FormatterConfig(), nil)
	require.NoError(t, err)
	assert.Equal(t, "CHF 98'765.40", f.Format(98765.4))
}

func TestInitializeConfig_HierarchicalPrecedence(t *testing.T) {
	clearTestEnvVars(t)

	tempDir := t.TempDir()
	configContent := `
log:
  level: "warn"
currency:
  code: "GBP"
  decimal_places: 0
csv:
  delimiter: "|"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))

	t.Setenv("CURFMT_LOG_LEVEL", "error")
	t.Setenv("CURFMT_CURRENCY_DECIMAL_PLACES", "4")
	chdir(t, tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "error", config.Log.Level)        // env var wins
	assert.Equal(t, "|", config.CSV.Delimiter)        // config file value
	assert.Equal(t, "GBP", config.Currency.Code)      // config file value
	assert.Equal(t, 4, config.Currency.DecimalPlaces) // env var wins
}

func TestInitializeConfigFile(t *testing.T) {
	clearTestEnvVars(t)

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("currency:\n  code: JPY\n  decimal_places: 0\n"), 0644))

	config, err := InitializeConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, "JPY", config.Currency.Code)
	assert.Equal(t, 0, config.Currency.DecimalPlaces)

	_, err = InitializeConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestInitializeConfig_InvalidCurrencyBlock(t *testing.T) {
	clearTestEnvVars(t)
	chdir(t, t.TempDir())

	t.Setenv("CURFMT_CURRENCY_DECIMAL_PLACES", "7")
	_, err := InitializeConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, formaterror.ErrInvalidDecimalPlaces))

	t.Setenv("CURFMT_CURRENCY_DECIMAL_PLACES", "2")
	t.Setenv("CURFMT_CURRENCY_POSITION", "diagonal")
	_, err = InitializeConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, formaterror.ErrInvalidPosition))
}

func TestValidateConfig_InvalidValues(t *testing.T) {
	tests := []struct {
		name         string
		modifyConfig func(*Config)
		expectError  string
	}{
		{
			name:         "invalid log level",
			modifyConfig: func(c *Config) { c.Log.Level = "invalid" },
			expectError:  "invalid log level",
		},
		{
			name:         "invalid log format",
			modifyConfig: func(c *Config) { c.Log.Format = "invalid" },
			expectError:  "invalid log format",
		},
		{
			name:         "invalid CSV delimiter",
			modifyConfig: func(c *Config) { c.CSV.Delimiter = "abc" },
			expectError:  "CSV delimiter must be a single character",
		},
		{
			name:         "compact decimals out of range",
			modifyConfig: func(c *Config) { c.Compact.Decimals = 5 },
			expectError:  "compact.decimals must be between 0 and 4",
		},
		{
			name:         "empty settings file",
			modifyConfig: func(c *Config) { c.Settings.File = "" },
			expectError:  "settings.file must not be empty",
		},
		{
			name:         "negative decimal places",
			modifyConfig: func(c *Config) { c.Currency.DecimalPlaces = -1 },
			expectError:  "decimal_places=-1",
		},
		{
			name:         "unknown position",
			modifyConfig: func(c *Config) { c.Currency.Position = "top" },
			expectError:  "currency_position=top",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validTestConfig()
			require.NoError(t, validateConfig(config))

			tt.modifyConfig(config)
			err := validateConfig(config)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectError)
		})
	}
}

func TestConfigureLoggingFromConfig(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		t.Run(format, func(t *testing.T) {
			config := validTestConfig()
			config.Log.Level = "debug"
			config.Log.Format = format

			logger := ConfigureLoggingFromConfig(config)
			require.NotNil(t, logger)
		})
	}
}

func validTestConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Currency.Code = "USD"
	c.Currency.Position = "left"
	c.Currency.DecimalPlaces = 2
	c.Currency.ThousandSeparator = ","
	c.Currency.DecimalSeparator = "."
	c.Settings.File = "settings.yaml"
	c.CSV.Delimiter = ","
	c.Compact.Decimals = 2
	return c
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	originalDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(originalDir))
	})
}

// clearTestEnvVars unsets overrides that may leak in from the developer's shell.
func clearTestEnvVars(t *testing.T) {
	envVars := []string{
		"CURFMT_LOG_LEVEL",
		"CURFMT_LOG_FORMAT",
		"CURFMT_CURRENCY_CODE",
		"CURFMT_CURRENCY_POSITION",
		"CURFMT_CURRENCY_DECIMAL_PLACES",
		"CURFMT_CURRENCY_THOUSAND_SEPARATOR",
		"CURFMT_CURRENCY_DECIMAL_SEPARATOR",
		"CURFMT_SETTINGS_FILE",
		"CURFMT_CSV_DELIMITER",
		"CURFMT_COMPACT_DECIMALS",
	}

	for _, envVar := range envVars {
		// t.Setenv restores the original value after the test.
		t.Setenv(envVar, "")
		require.NoError(t, os.Unsetenv(envVar))
	}
}
