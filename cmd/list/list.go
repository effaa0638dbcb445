// Package list prints the built-in symbol table and catalogs
package list

import (
	"fmt"
	"io"
	"sort"

	"fintrack/currency-format/internal/currencyfmt"

	"github.com/spf13/cobra"
)

// Cmd represents the list command
var Cmd = &cobra.Command{
	Use:       "list symbols|currencies|positions",
	Short:     "List known symbols, currencies or symbol positions",
	ValidArgs: []string{"symbols", "currencies", "positions"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Write(cmd.OutOrStdout(), args[0])
	},
}

// Write prints the named listing to w.
func Write(w io.Writer, what string) error {
	switch what {
	case "symbols":
		symbols := currencyfmt.AllSymbols()
		codes := make([]string, 0, len(symbols))
		for code := range symbols {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		for _, code := range codes {
			if _, err := fmt.Fprintf(w, "%-4s %s\n", code, symbols[code]); err != nil {
				return err
			}
		}
	case "currencies":
		for _, opt := range currencyfmt.CurrencyCodes() {
			if _, err := fmt.Fprintf(w, "%-4s %s\n", opt.Code, opt.Name); err != nil {
				return err
			}
		}
	case "positions":
		for _, opt := range currencyfmt.PositionOptions() {
			if _, err := fmt.Fprintf(w, "%-12s %s\n", opt.Position, opt.Label); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown listing %q", what)
	}
	return nil
}
