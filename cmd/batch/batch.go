// Package batch handles batch formatting of CSV files
package batch

import (
	"fmt"
	"os"

	"fintrack/currency-format/cmd/root"
	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"

	"github.com/spf13/cobra"
)

var (
	input  string
	output string

	// Cmd represents the batch command
	Cmd = &cobra.Command{
		Use:   "batch",
		Short: "Batch format amounts from CSV files",
		Long: `Batch format amounts read from a CSV file, or from every CSV file in a directory.

The input needs an "amount" column and may carry a "currency" column that
overrides the currency of the formatted column for that row. The output repeats
both and adds the formatted, number, compact and thousands renderings.

Example:
  currency-format batch -i amounts.csv -o formatted.csv
  currency-format batch -i input_dir/ -o output_dir/ --user alice`,
		RunE: batchFunc,
	}
)

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Input CSV file or directory")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file or directory")
}

func batchFunc(cmd *cobra.Command, args []string) error {
	if input == "" || output == "" {
		return fmt.Errorf("input and output must be specified")
	}

	ctx, _, err := root.ResolveFormatter(cmd)
	if err != nil {
		return err
	}
	f := currencyfmt.FromContextOrDefault(ctx)
	processor := root.GetContainer().GetProcessor()
	logger := root.GetLogger()

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input not found: %w", err)
	}

	if !info.IsDir() {
		n, err := processor.ProcessFile(f, input, output)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Formatted %d rows into %s\n", n, output)
		return err
	}

	results, err := processor.ProcessDir(f, input, output)
	if err != nil {
		return err
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			continue
		}
		logger.Debug("Formatted file",
			logging.Field{Key: logging.FieldFile, Value: res.Output},
			logging.Field{Key: logging.FieldCount, Value: res.Rows})
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Batch formatting completed. %d of %d files formatted.\n",
		len(results)-failed, len(results)); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d files failed", failed)
	}
	return nil
}
