// Package batch formats amounts read from CSV files.
package batch

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fintrack/currency-format/internal/currencyfmt"
	"fintrack/currency-format/internal/logging"

	"github.com/gocarina/gocsv"
)

// InputRow is one line of a batch input file. Currency is optional; when
// empty the formatter's configured currency is used.
type InputRow struct {
	Amount   string `csv:"amount"`
	Currency string `csv:"currency"`
}

// OutputRow carries every rendering of an input amount.
type OutputRow struct {
	Amount    string `csv:"amount"`
	Currency  string `csv:"currency"`
	Formatted string `csv:"formatted"`
	Number    string `csv:"number"`
	Compact   string `csv:"compact"`
	Thousands string `csv:"thousands"`
}

// FileResult reports the outcome for one file processed by ProcessDir.
type FileResult struct {
	Input  string
	Output string
	Rows   int
	Err    error
}

// Processor reads amounts from CSV and writes their formatted renderings.
type Processor struct {
	logger          logging.Logger
	delimiter       rune
	compactDecimals int
}

// NewProcessor creates a Processor. compactDecimals applies to the compact and
// thousands columns.
func NewProcessor(logger logging.Logger, delimiter rune, compactDecimals int) *Processor {
	if logger == nil {
		logger = logging.GetLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Processor{logger: logger, delimiter: delimiter, compactDecimals: compactDecimals}
}

// Process reads rows from in, formats them with f and writes the result to out.
// It returns the number of rows written.
func (p *Processor) Process(f *currencyfmt.Formatter, in io.Reader, out io.Writer) (int, error) {
	rows, err := p.read(in)
	if err != nil {
		return 0, err
	}

	results := make([]OutputRow, 0, len(rows))
	for _, row := range rows {
		results = append(results, p.render(f, row))
	}

	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = p.delimiter
	if err := gocsv.MarshalCSV(results, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		p.logger.WithError(err).Error("Failed to write formatted rows")
		return 0, fmt.Errorf("error writing CSV data: %w", err)
	}
	return len(results), nil
}

// ProcessFile formats inputFile into outputFile, creating the output directory
// if needed.
func (p *Processor) ProcessFile(f *currencyfmt.Formatter, inputFile, outputFile string) (int, error) {
	p.logger.Info("Formatting CSV file",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile})

	in, err := os.Open(inputFile)
	if err != nil {
		return 0, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := in.Close(); err != nil {
			p.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	if err := os.MkdirAll(filepath.Dir(outputFile), 0750); err != nil {
		return 0, fmt.Errorf("error creating directory: %w", err)
	}
	out, err := os.Create(outputFile)
	if err != nil {
		return 0, fmt.Errorf("error creating CSV file: %w", err)
	}

	n, err := p.Process(f, in, out)
	if closeErr := out.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("error closing CSV file: %w", closeErr)
	}
	if err != nil {
		return 0, err
	}

	p.logger.Info("Successfully formatted CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: n})
	return n, nil
}

// ProcessDir formats every .csv file in inputDir into a file of the same name
// in outputDir. A file that fails is logged and reported in its FileResult;
// the remaining files are still processed.
func (p *Processor) ProcessDir(f *currencyfmt.Formatter, inputDir, outputDir string) ([]FileResult, error) {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, fmt.Errorf("error reading input directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	results := make([]FileResult, 0, len(files))
	for _, name := range files {
		res := FileResult{
			Input:  filepath.Join(inputDir, name),
			Output: filepath.Join(outputDir, name),
		}
		res.Rows, res.Err = p.ProcessFile(f, res.Input, res.Output)
		if res.Err != nil {
			p.logger.WithError(res.Err).Error("Failed to format file",
				logging.Field{Key: logging.FieldFile, Value: res.Input})
		}
		results = append(results, res)
	}

	p.logger.Info("Batch formatting completed",
		logging.Field{Key: logging.FieldCount, Value: len(results)})
	return results, nil
}

func (p *Processor) read(in io.Reader) ([]InputRow, error) {
	csvReader := csv.NewReader(in)
	csvReader.Comma = p.delimiter
	csvReader.TrimLeadingSpace = true

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV input is empty")
	}
	if !hasColumn(records[0], "amount") {
		return nil, fmt.Errorf("CSV header has no 'amount' column: %v", records[0])
	}

	var rows []InputRow
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	p.logger.Debug("Read batch rows", logging.Field{Key: logging.FieldCount, Value: len(rows)})
	return rows, nil
}

func (p *Processor) render(f *currencyfmt.Formatter, row InputRow) OutputRow {
	code := strings.ToUpper(strings.TrimSpace(row.Currency))
	if code == "" {
		code = f.Config().CurrencyCode
	}
	return OutputRow{
		Amount:    row.Amount,
		Currency:  code,
		Formatted: f.FormatWith(row.Amount, code, ""),
		Number:    f.FormatNumber(row.Amount),
		Compact:   f.FormatCompact(row.Amount, true, p.compactDecimals),
		Thousands: f.FormatToK(row.Amount, p.compactDecimals),
	}
}

func hasColumn(header []string, name string) bool {
	for _, h := range header {
		if h == name {
			return true
		}
	}
	return false
}

// recordReader replays already parsed records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
