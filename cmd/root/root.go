// Package root contains the root command for the application
package root

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"fintrack/currency-format/internal/config"
	"fintrack/currency-format/internal/container"
	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Config            string
	LogLevel          string
	User              string
	Currency          string
	Position          string
	Decimals          int
	ThousandSeparator string
	DecimalSeparator  string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "currency-format",
		Short: "A CLI tool to format monetary amounts with per-user currency settings.",
		Long: `currency-format renders amounts as currency strings, grouped numbers and
compact figures (1.5k, 2.3M). Formatting follows the configured currency and
each user's stored settings, which can be overridden per invocation.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appContainer != nil {
				if err := appContainer.Close(); err != nil {
					appContainer.GetLogger().WithError(err).Warn("Failed to close container")
				}
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
		},
	}

	// SharedFlags are bound to the persistent flags of Cmd
	SharedFlags = CommonFlags{}

	appContainer *container.Container

	// negativeAmount matches arguments such as "-500" or "-1,234.50" that flag
	// parsing would otherwise read as shorthand flags.
	negativeAmount = regexp.MustCompile(`^-[0-9.,']*[0-9][0-9.,']*$`)
)

// Init initializes the root command and all flags
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.Config, "config", "", "Config file (default $CURFMT_CONFIG, else searches $HOME/.currency-format, .currency-format and .)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Override the configured log level")
	flags.StringVarP(&SharedFlags.User, "user", "u", "", "User whose stored settings apply")
	flags.StringVarP(&SharedFlags.Currency, "currency", "c", "", "Currency code, e.g. EUR")
	flags.StringVarP(&SharedFlags.Position, "position", "p", "", "Symbol position: left, right, left_space, right_space")
	flags.IntVarP(&SharedFlags.Decimals, "decimals", "d", currencyfmt.DefaultDecimalPlaces, "Decimal places (0-4)")
	flags.StringVar(&SharedFlags.ThousandSeparator, "thousand-sep", "", "Thousands separator")
	flags.StringVar(&SharedFlags.DecimalSeparator, "decimal-sep", "", "Decimal separator")
}

func setup(cmd *cobra.Command, args []string) error {
	config.LoadEnv()

	cfg, err := config.InitializeConfigFile(configFile())
	if err != nil {
		return err
	}
	if SharedFlags.LogLevel != "" {
		cfg.Log.Level = SharedFlags.LogLevel
	}

	logger := config.ConfigureLoggingFromConfig(cfg)
	c, err := container.NewContainer(cfg, container.WithLogger(logger))
	if err != nil {
		return err
	}
	appContainer = c
	return nil
}

// configFile returns the --config flag, falling back to CURFMT_CONFIG.
func configFile() string {
	if SharedFlags.Config != "" {
		return SharedFlags.Config
	}
	return config.GetEnv(config.EnvPrefix+"_CONFIG", "")
}

// Execute runs the root command on the process arguments.
func Execute() error {
	Cmd.SetArgs(SeparateNegativeAmounts(os.Args[1:]))
	return Cmd.Execute()
}

// SeparateNegativeAmounts rewrites args so that negative amounts reach the
// command as positional arguments instead of failing as unknown shorthand
// flags. When any positional argument is a negative amount, the command names
// come first, then the flags with their values, then "--" and the positional
// arguments in their original order. Otherwise args is returned as is.
func SeparateNegativeAmounts(args []string) []string {
	cmd, _, err := Cmd.Find(args)
	if err != nil {
		return args
	}
	depth := len(strings.Fields(cmd.CommandPath())) - 1

	var names, flags, positional []string
	negative, expectValue := false, false
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case expectValue:
			flags = append(flags, arg)
			expectValue = false
		case arg == "--":
			positional = append(positional, args[i+1:]...)
			i = len(args)
		case negativeAmount.MatchString(arg):
			positional = append(positional, arg)
			negative = true
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			flags = append(flags, arg)
			expectValue = takesValue(cmd, arg)
		case len(names) < depth:
			names = append(names, arg)
		default:
			positional = append(positional, arg)
		}
	}
	if !negative {
		return args
	}

	out := make([]string, 0, len(args)+1)
	out = append(out, names...)
	out = append(out, flags...)
	out = append(out, "--")
	return append(out, positional...)
}

// takesValue reports whether the flag in arg consumes the next argument.
func takesValue(cmd *cobra.Command, arg string) bool {
	if strings.Contains(arg, "=") {
		return false
	}
	var find func(*pflag.FlagSet) *pflag.Flag
	switch {
	case strings.HasPrefix(arg, "--"):
		find = func(fs *pflag.FlagSet) *pflag.Flag { return fs.Lookup(arg[2:]) }
	case len(arg) == 2:
		find = func(fs *pflag.FlagSet) *pflag.Flag { return fs.ShorthandLookup(arg[1:]) }
	default:
		return false
	}

	f := find(cmd.Flags())
	for c := cmd; f == nil && c != nil; c = c.Parent() {
		f = find(c.PersistentFlags())
	}
	return f != nil && f.NoOptDefVal == ""
}

// GetContainer returns the container built for the running command.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the container; used by tests that bypass setup.
func SetContainer(c *container.Container) {
	appContainer = c
}

// ResetFlags restores every persistent flag to its default and drops the
// container. Commands run in-process by tests call it between runs.
func ResetFlags() {
	Cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	appContainer = nil
}

// GetLogger returns the container's logger, or the package default before setup.
func GetLogger() logging.Logger {
	if appContainer == nil {
		return logging.GetLogger()
	}
	return appContainer.GetLogger()
}

// Overrides returns the settings patch described by the flags that were set on
// the command line.
func Overrides() currencyfmt.Settings {
	flags := Cmd.PersistentFlags()
	s := currencyfmt.Settings{
		Currency:          SharedFlags.Currency,
		CurrencyPosition:  SharedFlags.Position,
		ThousandSeparator: SharedFlags.ThousandSeparator,
		DecimalSeparator:  SharedFlags.DecimalSeparator,
	}
	if flags.Changed("decimals") {
		s.DecimalPlaces = currencyfmt.IntPtr(SharedFlags.Decimals)
	}
	return s
}

// ResolveFormatter builds the formatter for the current user with the command
// line overrides applied, and returns a context carrying it.
func ResolveFormatter(cmd *cobra.Command) (context.Context, *currencyfmt.Formatter, error) {
	if appContainer == nil {
		return nil, nil, fmt.Errorf("container not initialized")
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return appContainer.GetResolver().ForUserWith(ctx, SharedFlags.User, Overrides())
}
