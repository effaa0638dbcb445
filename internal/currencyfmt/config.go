package currencyfmt

import (
	"errors"
	"fmt"
	"strings"

	"fintrack/currency-format/internal/formaterror"

	"github.com/go-playground/validator/v10"
)

// Default formatter settings.
const (
	DefaultCurrency          = "USD"
	DefaultPosition          = PositionLeft
	DefaultDecimalPlaces     = 2
	DefaultThousandSeparator = ","
	DefaultDecimalSeparator  = "."

	MaxDecimalPlaces = 4
)

var validate = validator.New()

// Config is the formatter's state.
type Config struct {
	CurrencyCode      string   `validate:"-"`
	SymbolPosition    Position `validate:"oneof=left right left_space right_space"`
	DecimalPlaces     int      `validate:"min=0,max=4"`
	ThousandSeparator string   `validate:"-"`
	DecimalSeparator  string   `validate:"-"`
}

// DefaultConfig returns USD, left, 2 decimals, "," and ".".
func DefaultConfig() Config {
	return Config{
		CurrencyCode:      DefaultCurrency,
		SymbolPosition:    DefaultPosition,
		DecimalPlaces:     DefaultDecimalPlaces,
		ThousandSeparator: DefaultThousandSeparator,
		DecimalSeparator:  DefaultDecimalSeparator,
	}
}

// Validate checks the decimal places range and the symbol position and returns
// a *formaterror.ConfigurationError for the first violation.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &formaterror.ConfigurationError{Field: "config", Value: c, Err: fmt.Errorf("%w: %v", formaterror.ErrInvalidSetting, err)}
	}

	fe := fieldErrs[0]
	switch fe.StructField() {
	case "DecimalPlaces":
		return &formaterror.ConfigurationError{
			Field:  "decimal_places",
			Value:  c.DecimalPlaces,
			Reason: fmt.Sprintf("must be between 0 and %d", MaxDecimalPlaces),
			Err:    formaterror.ErrInvalidDecimalPlaces,
		}
	case "SymbolPosition":
		return &formaterror.ConfigurationError{
			Field:  "currency_position",
			Value:  string(c.SymbolPosition),
			Reason: "must be one of left, right, left_space, right_space",
			Err:    formaterror.ErrInvalidPosition,
		}
	}
	return &formaterror.ConfigurationError{Field: fe.Field(), Value: fe.Value(), Reason: fe.Tag(), Err: formaterror.ErrInvalidSetting}
}

func (c Config) normalized() Config {
	c.CurrencyCode = strings.ToUpper(strings.TrimSpace(c.CurrencyCode))
	c.SymbolPosition = ParsePosition(string(c.SymbolPosition))
	return c
}
