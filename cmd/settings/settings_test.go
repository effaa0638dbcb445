package settings

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/currency-format/cmd/root"
	"fintrack/currency-format/internal/config"
	"fintrack/currency-format/internal/container"
	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/formaterror"
	"fintrack/currency-format/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func init() {
	root.Init()
}

func setupContainer(t *testing.T) *container.Container {
	t.Helper()
	t.Cleanup(root.ResetFlags)
	return newContainer(t, filepath.Join(t.TempDir(), "settings.yaml"))
}

// newContainer builds a container around settingsFile the way a CLI
// invocation would.
func newContainer(t *testing.T, settingsFile string) *container.Container {
	t.Helper()
	cfg := &config.Config{}
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Currency.Code = "USD"
	cfg.Currency.Position = "left"
	cfg.Currency.DecimalPlaces = 2
	cfg.Currency.ThousandSeparator = ","
	cfg.Currency.DecimalSeparator = "."
	cfg.Settings.File = settingsFile
	cfg.CSV.Delimiter = ","
	cfg.Compact.Decimals = 2

	c, err := container.NewContainer(cfg, container.WithLogger(logging.NewMockLogger()))
	require.NoError(t, err)
	root.SetContainer(c)
	return c
}

func run(t *testing.T, fn func(*cobra.Command, []string) error, cmd *cobra.Command) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	t.Cleanup(func() { cmd.SetOut(nil) })
	err := fn(cmd, nil)
	return out.String(), err
}

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	require.NoError(t, root.Cmd.PersistentFlags().Set(name, value))
}

func TestSettingsCommand_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range Cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set", "users", "reset"}, names)
}

func TestShow_Defaults(t *testing.T) {
	setupContainer(t)

	out, err := run(t, showFunc, showCmd)
	require.NoError(t, err)

	var snap currencyfmt.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, currencyfmt.Snapshot{
		Currency:          "USD",
		CurrencyPosition:  currencyfmt.PositionLeft,
		ThousandSeparator: ",",
		DecimalSeparator:  ".",
		DecimalPlaces:     2,
		Symbol:            "$",
	}, snap)
}

func TestSetThenShow(t *testing.T) {
	settingsFile := setupContainer(t).GetConfig().Settings.File

	setFlag(t, "user", "alice")
	setFlag(t, "currency", "eur")
	setFlag(t, "decimals", "0")

	out, err := run(t, setFunc, setCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "currency: eur")
	assert.Contains(t, out, "decimal_places: 0")

	// A later invocation without overrides sees the stored settings.
	root.ResetFlags()
	newContainer(t, settingsFile)
	setFlag(t, "user", "alice")

	out, err = run(t, showFunc, showCmd)
	require.NoError(t, err)

	var snap currencyfmt.Snapshot
	require.NoError(t, yaml.Unmarshal([]byte(out), &snap))
	assert.Equal(t, "EUR", snap.Currency)
	assert.Equal(t, "€", snap.Symbol)
	assert.Equal(t, 0, snap.DecimalPlaces)

	out, err = run(t, usersFunc, usersCmd)
	require.NoError(t, err)
	assert.Equal(t, "alice\n", out)

	out, err = run(t, resetFunc, resetCmd)
	require.NoError(t, err)
	assert.Contains(t, out, "Settings for alice removed")

	out, err = run(t, usersFunc, usersCmd)
	require.NoError(t, err)
	assert.Empty(t, strings.TrimSpace(out))
}

func TestSet_Errors(t *testing.T) {
	setupContainer(t)

	_, err := run(t, setFunc, setCmd)
	assert.EqualError(t, err, "--user is required")

	setFlag(t, "user", "bob")
	_, err = run(t, setFunc, setCmd)
	assert.Contains(t, err.Error(), "nothing to set")

	setFlag(t, "position", "diagonal")
	_, err = run(t, setFunc, setCmd)
	assert.ErrorIs(t, err, formaterror.ErrInvalidPosition)

	_, err = run(t, resetFunc, resetCmd)
	assert.NoError(t, err)
}

func TestShow_InvalidOverride(t *testing.T) {
	setupContainer(t)
	setFlag(t, "decimals", "7")

	_, err := run(t, showFunc, showCmd)
	assert.ErrorIs(t, err, formaterror.ErrInvalidDecimalPlaces)
}
