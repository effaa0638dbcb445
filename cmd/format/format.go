// Package format implements the format command
package format

import (
	"fmt"
	"strings"

	"fintrack/currency-format/cmd/root"
	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"

	"github.com/spf13/cobra"
)

// Mode selects which rendering the format command produces.
type Mode string

const (
	ModeCurrency Mode = "currency"
	ModeNumber   Mode = "number"
	ModeCompact  Mode = "compact"
	ModeK        Mode = "k"
)

var (
	mode      string
	noSymbol  bool
	precision int

	// Cmd represents the format command
	Cmd = &cobra.Command{
		Use:   "format [amount...]",
		Short: "Format one or more amounts",
		Long: `Format one or more amounts with the resolved currency settings.

Amounts are read leniently: "$1,234.56", "1234.56" and "-12" are all accepted,
and anything without a number formats as zero. Negative amounts are told apart
from flags; "--" also ends flag parsing explicitly.

Example:
  currency-format format 1234.56 --currency EUR --position right_space
  currency-format format 2500000 --mode compact --precision 1
  currency-format format -- -500`,
		Args: cobra.MinimumNArgs(1),
		RunE: formatFunc,
	}
)

func init() {
	Cmd.Flags().StringVarP(&mode, "mode", "m", string(ModeCurrency), "Rendering: currency, number, compact or k")
	Cmd.Flags().BoolVar(&noSymbol, "no-symbol", false, "Omit the currency symbol in compact mode")
	Cmd.Flags().IntVar(&precision, "precision", -1, "Decimals for compact and k modes (default from config)")
	Cmd.SetFlagErrorFunc(flagError)
}

// flagError points at "--" when a negative amount was taken for a flag.
func flagError(cmd *cobra.Command, err error) error {
	if strings.HasPrefix(err.Error(), "unknown shorthand flag") {
		return fmt.Errorf("%w (negative amounts go after --, e.g. currency-format format -- -500)", err)
	}
	return err
}

func formatFunc(cmd *cobra.Command, args []string) error {
	ctx, _, err := root.ResolveFormatter(cmd)
	if err != nil {
		return err
	}
	f := currencyfmt.FromContextOrDefault(ctx)

	decimals := precision
	if decimals < 0 {
		decimals = root.GetContainer().GetConfig().Compact.Decimals
	}

	logger := root.GetLogger()
	for _, amount := range args {
		out, err := Render(f, Mode(strings.ToLower(mode)), amount, !noSymbol, decimals)
		if err != nil {
			return err
		}
		logger.Debug("Formatted amount",
			logging.Field{Key: logging.FieldAmount, Value: amount},
			logging.Field{Key: logging.FieldOperation, Value: mode})
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), out); err != nil {
			return err
		}
	}
	return nil
}

// Render produces a single rendering of amount.
func Render(f *currencyfmt.Formatter, m Mode, amount string, includeSymbol bool, decimals int) (string, error) {
	switch m {
	case ModeCurrency:
		return f.Format(amount), nil
	case ModeNumber:
		return f.FormatNumber(amount), nil
	case ModeCompact:
		return f.FormatCompact(amount, includeSymbol, decimals), nil
	case ModeK:
		return f.FormatToK(amount, decimals), nil
	}
	return "", fmt.Errorf("unknown mode %q (must be currency, number, compact or k)", m)
}
