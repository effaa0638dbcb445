// Package currencyfmt formats monetary amounts according to a user's currency
// preferences: currency symbol and its placement, decimal places, and
// thousand/decimal separators.
//
// A Formatter holds one user's preferences. It is cheap to build and is meant
// to be created per request (see NewContext) instead of being shared and
// reconfigured across users.
package currencyfmt

import (
	"fmt"
	"strconv"
	"strings"

	"fintrack/currency-format/internal/logging"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Compact notation suffixes.
const (
	SuffixThousand = "k"
	SuffixMillion  = "M"
	SuffixBillion  = "B"
)

var (
	thousand = decimal.NewFromInt(1_000)
	million  = decimal.NewFromInt(1_000_000)
	billion  = decimal.NewFromInt(1_000_000_000)
)

// Snapshot is a serializable view of a formatter's configuration, including
// the symbol resolved for its currency.
type Snapshot struct {
	Currency          string   `json:"currency" yaml:"currency"`
	CurrencyPosition  Position `json:"currency_position" yaml:"currency_position"`
	ThousandSeparator string   `json:"thousand_separator" yaml:"thousand_separator"`
	DecimalSeparator  string   `json:"decimal_separator" yaml:"decimal_separator"`
	DecimalPlaces     int      `json:"decimal_places" yaml:"decimal_places"`
	Symbol            string   `json:"symbol" yaml:"symbol"`
}

// Formatter renders amounts using one configuration. Formatting methods never
// modify the configuration; only ApplySettings does.
type Formatter struct {
	cfg    Config
	logger logging.Logger
}

// New creates a formatter from cfg. The currency code is uppercased and the
// configuration validated; an invalid configuration yields a
// *formaterror.ConfigurationError.
func New(cfg Config, logger logging.Logger) (*Formatter, error) {
	cfg = cfg.normalized()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Formatter{cfg: cfg, logger: logger}, nil
}

// NewDefault creates a formatter with DefaultConfig.
func NewDefault(logger logging.Logger) *Formatter {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Formatter{cfg: DefaultConfig(), logger: logger}
}

// NewWithSettings creates a formatter from the defaults overlaid with s.
func NewWithSettings(s Settings, logger logging.Logger) (*Formatter, error) {
	return New(s.applyTo(DefaultConfig()), logger)
}

// Config returns a copy of the current configuration.
func (f *Formatter) Config() Config {
	return f.cfg
}

// ApplySettings merges s into the configuration and returns the formatter for
// chaining. The merged configuration is validated first; when it is invalid
// the formatter is left unchanged and the error is returned.
func (f *Formatter) ApplySettings(s Settings) (*Formatter, error) {
	next := s.applyTo(f.cfg)
	if err := next.Validate(); err != nil {
		f.logger.WithError(err).Warn("Rejected formatter settings",
			logging.Field{Key: logging.FieldOperation, Value: "apply_settings"})
		return nil, err
	}
	f.cfg = next
	f.logger.Debug("Applied formatter settings",
		logging.Field{Key: logging.FieldCurrency, Value: next.CurrencyCode},
		logging.Field{Key: logging.FieldPosition, Value: string(next.SymbolPosition)},
		logging.Field{Key: logging.FieldDecimals, Value: next.DecimalPlaces})
	return f, nil
}

// WithSettings is ApplySettings on a copy; f itself is never modified.
func (f *Formatter) WithSettings(s Settings) (*Formatter, error) {
	clone := *f
	return clone.ApplySettings(s)
}

// Format renders amount with the configured currency and position,
// e.g. "$1,234.56" or "-$500.00".
func (f *Formatter) Format(amount interface{}) string {
	return f.FormatWith(amount, "", "")
}

// FormatWith renders amount like Format, with optional currency code and
// position overrides. Empty overrides fall back to the configuration, as does
// an unknown position.
//
// The minus sign always leads the whole string, so a negative amount renders
// as "-$100.00", never "$-100.00".
func (f *Formatter) FormatWith(amount interface{}, currencyCode string, position Position) string {
	value := f.normalize(amount)

	if currencyCode == "" {
		currencyCode = f.cfg.CurrencyCode
	}
	symbol := LookupSymbol(currencyCode)

	pos := ParsePosition(string(position))
	if !pos.IsValid() {
		pos = f.cfg.SymbolPosition
	}

	out := pos.place(f.renderNumber(value.Abs()), symbol)
	if value.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatNumber renders amount with the configured decimal places and
// separators but no symbol. The sign stays attached to the number.
func (f *Formatter) FormatNumber(amount interface{}) string {
	return f.renderNumber(f.normalize(amount))
}

// FormatCompact abbreviates amount with a k, M or B suffix, e.g. "$1.50M".
// The number always uses "," grouping and "." decimals regardless of the
// configured separators. Negative decimals are treated as zero.
func (f *Formatter) FormatCompact(amount interface{}, includeSymbol bool, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	value := f.normalize(amount)
	abs := value.Abs()

	divisor, suffix := decimal.NewFromInt(1), ""
	switch {
	case abs.GreaterThanOrEqual(billion):
		divisor, suffix = billion, SuffixBillion
	case abs.GreaterThanOrEqual(million):
		divisor, suffix = million, SuffixMillion
	case abs.GreaterThanOrEqual(thousand):
		divisor, suffix = thousand, SuffixThousand
	}

	out := groupFixed(abs.Div(divisor), decimals) + suffix
	if includeSymbol {
		out = f.cfg.SymbolPosition.place(out, f.Symbol())
	}
	if value.IsNegative() {
		return "-" + out
	}
	return out
}

// FormatToK renders amounts of 1000 or more in thousands with a "k" suffix,
// smaller ones as they are. Output is plain fixed-point: no grouping, "."
// decimals, no symbol, whatever the configuration says.
func (f *Formatter) FormatToK(amount interface{}, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	value := f.normalize(amount)
	if value.Abs().GreaterThanOrEqual(thousand) {
		return value.Div(thousand).StringFixed(int32(decimals)) + SuffixThousand
	}
	return value.StringFixed(int32(decimals))
}

// Symbol returns the symbol of the configured currency.
func (f *Formatter) Symbol() string {
	return LookupSymbol(f.cfg.CurrencyCode)
}

// SymbolFor returns the symbol for code, or the configured currency's symbol
// when code is empty.
func (f *Formatter) SymbolFor(code string) string {
	if code == "" {
		return f.Symbol()
	}
	return LookupSymbol(code)
}

// AllSymbols returns a copy of the symbol table.
func (f *Formatter) AllSymbols() map[string]string {
	return AllSymbols()
}

// Snapshot returns the current configuration with the resolved symbol.
func (f *Formatter) Snapshot() Snapshot {
	return Snapshot{
		Currency:          f.cfg.CurrencyCode,
		CurrencyPosition:  f.cfg.SymbolPosition,
		ThousandSeparator: f.cfg.ThousandSeparator,
		DecimalSeparator:  f.cfg.DecimalSeparator,
		DecimalPlaces:     f.cfg.DecimalPlaces,
		Symbol:            f.Symbol(),
	}
}

func (f *Formatter) normalize(amount interface{}) decimal.Decimal {
	value, degraded := normalize(amount)
	if degraded {
		f.logger.Debug("Unparseable amount formatted as zero",
			logging.Field{Key: logging.FieldAmount, Value: fmt.Sprintf("%v", amount)})
	}
	return value
}

// renderNumber applies the configured decimal places and separators.
func (f *Formatter) renderNumber(value decimal.Decimal) string {
	grouped := groupFixed(value, f.cfg.DecimalPlaces)
	return strings.NewReplacer(",", f.cfg.ThousandSeparator, ".", f.cfg.DecimalSeparator).Replace(grouped)
}

// groupFixed rounds value half away from zero to places decimals and renders
// it with "," grouping and "." as decimal point. The digits come from the
// decimal itself, so no precision is lost on large amounts.
func groupFixed(value decimal.Decimal, places int) string {
	rounded := value.Round(int32(places))
	intDigits, frac, _ := strings.Cut(rounded.Abs().StringFixed(int32(places)), ".")

	out := groupDigits(message.NewPrinter(language.AmericanEnglish), intDigits)
	if frac != "" {
		out += "." + frac
	}
	if rounded.IsNegative() {
		return "-" + out
	}
	return out
}

// groupChunk is the number of digits grouped per x/text call; it keeps every
// chunk within uint64, where x/text formats integers exactly.
const groupChunk = 18

// groupDigits groups a run of decimal digits in threes, working from the
// right in chunks of groupChunk digits. Inner chunks keep their leading zeros.
func groupDigits(p *message.Printer, digits string) string {
	if len(digits) <= groupChunk {
		n, _ := strconv.ParseUint(digits, 10, 64)
		return p.Sprintf("%v", number.Decimal(n))
	}
	split := len(digits) - groupChunk
	n, _ := strconv.ParseUint(digits[split:], 10, 64)
	return groupDigits(p, digits[:split]) + "," + p.Sprintf("%v", number.Decimal(n, number.MinIntegerDigits(groupChunk)))
}
