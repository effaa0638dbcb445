package container

import (
	"context"
	"path/filepath"
	"testing"

	"fintrack/currency-format/internal/config"
	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/formaterror"
	"fintrack/currency-format/internal/logging"
	"fintrack/currency-format/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Currency.Code = "USD"
	c.Currency.Position = "left"
	c.Currency.DecimalPlaces = 2
	c.Currency.ThousandSeparator = ","
	c.Currency.DecimalSeparator = "."
	c.Settings.File = filepath.Join(t.TempDir(), "settings.yaml")
	c.CSV.Delimiter = ";"
	c.Compact.Decimals = 1
	return c
}

func TestNewContainer(t *testing.T) {
	tests := []struct {
		name        string
		config      func(t *testing.T) *config.Config
		expectError bool
		errorMsg    string
	}{
		{
			name:        "nil config",
			config:      func(t *testing.T) *config.Config { return nil },
			expectError: true,
			errorMsg:    "configuration cannot be nil",
		},
		{
			name:   "valid config",
			config: testConfig,
		},
		{
			name: "json logging",
			config: func(t *testing.T) *config.Config {
				c := testConfig(t)
				c.Log.Level = "debug"
				c.Log.Format = "json"
				return c
			},
		},
		{
			name: "invalid currency block",
			config: func(t *testing.T) *config.Config {
				c := testConfig(t)
				c.Currency.DecimalPlaces = 8
				return c
			},
			expectError: true,
			errorMsg:    "invalid base formatter configuration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewContainer(tt.config(t))

			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				assert.Nil(t, c)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, c)
			assert.NotNil(t, c.GetLogger())
			assert.NotNil(t, c.GetConfig())
			assert.NotNil(t, c.GetStore())
			assert.NotNil(t, c.GetResolver())
			assert.NotNil(t, c.GetProcessor())
			assert.NoError(t, c.Close())
		})
	}
}

func TestContainer_InvalidCurrencyIsConfigurationError(t *testing.T) {
	cfg := testConfig(t)
	cfg.Currency.Position = "nowhere"

	_, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	assert.True(t, formaterror.IsConfigurationError(err))
}

func TestContainer_WiresStoreIntoResolver(t *testing.T) {
	cfg := testConfig(t)
	c, err := NewContainer(cfg, WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	_, err = c.GetStore().Update("alice", currencyfmt.Settings{Currency: "EUR", CurrencyPosition: "right_space"})
	require.NoError(t, err)

	_, f, err := c.GetResolver().ForUser(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "1,234.56 €", f.Format(1234.56))

	assert.FileExists(t, cfg.Settings.File)
}

func TestContainer_WithStore(t *testing.T) {
	mock := store.NewMockSettingsStore(map[string]currencyfmt.Settings{
		"bob": {Currency: "GBP", DecimalPlaces: currencyfmt.IntPtr(0)},
	})
	logger := logging.NewMockLogger()

	c, err := NewContainer(testConfig(t), WithStore(mock), WithLogger(logger))
	require.NoError(t, err)
	assert.Same(t, mock, c.GetStore())
	assert.Same(t, logger, c.GetLogger())

	_, f, err := c.GetResolver().ForUser(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, "£1,235", f.Format(1234.56))
}

func TestContainer_Immutability(t *testing.T) {
	c, err := NewContainer(testConfig(t), WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)

	assert.Same(t, c.GetResolver(), c.GetResolver())
	assert.Same(t, c.GetProcessor(), c.GetProcessor())
	assert.Same(t, c.GetConfig(), c.GetConfig())
}
