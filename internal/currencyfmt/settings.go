package currencyfmt

import (
	"fmt"

	"fintrack/currency-format/internal/formaterror"

	"github.com/spf13/cast"
)

// Settings is a partial update of a formatter's configuration, usually taken
// from a user's stored preferences. Empty strings and a nil DecimalPlaces mean
// "leave unchanged"; zero decimal places is a real value.
type Settings struct {
	Currency          string `json:"currency,omitempty" yaml:"currency,omitempty"`
	CurrencyPosition  string `json:"currency_position,omitempty" yaml:"currency_position,omitempty"`
	ThousandSeparator string `json:"thousand_separator,omitempty" yaml:"thousand_separator,omitempty"`
	DecimalSeparator  string `json:"decimal_separator,omitempty" yaml:"decimal_separator,omitempty"`
	DecimalPlaces     *int   `json:"decimal_places,omitempty" yaml:"decimal_places,omitempty"`
}

// Record keys accepted by SettingsFromRecord.
const (
	KeyCurrency          = "currency"
	KeyCurrencyPosition  = "currency_position"
	KeyThousandSeparator = "thousand_separator"
	KeyDecimalSeparator  = "decimal_separator"
	KeyDecimalPlaces     = "decimal_places"
)

// IntPtr is a helper for building Settings literals.
func IntPtr(v int) *int {
	return &v
}

// IsEmpty reports whether the patch would change nothing.
func (s Settings) IsEmpty() bool {
	return s.Currency == "" && s.CurrencyPosition == "" && s.ThousandSeparator == "" &&
		s.DecimalSeparator == "" && s.DecimalPlaces == nil
}

// Merge returns s with every field that patch sets overwritten.
func (s Settings) Merge(patch Settings) Settings {
	if patch.Currency != "" {
		s.Currency = patch.Currency
	}
	if patch.CurrencyPosition != "" {
		s.CurrencyPosition = patch.CurrencyPosition
	}
	if patch.ThousandSeparator != "" {
		s.ThousandSeparator = patch.ThousandSeparator
	}
	if patch.DecimalSeparator != "" {
		s.DecimalSeparator = patch.DecimalSeparator
	}
	if patch.DecimalPlaces != nil {
		s.DecimalPlaces = IntPtr(*patch.DecimalPlaces)
	}
	return s
}

// Validate checks the fields the patch sets, using the same rules as
// Config.Validate.
func (s Settings) Validate() error {
	return s.applyTo(DefaultConfig()).Validate()
}

// applyTo overlays the patch on cfg. The result is not validated.
func (s Settings) applyTo(cfg Config) Config {
	if s.Currency != "" {
		cfg.CurrencyCode = s.Currency
	}
	if s.CurrencyPosition != "" {
		cfg.SymbolPosition = Position(s.CurrencyPosition)
	}
	if s.ThousandSeparator != "" {
		cfg.ThousandSeparator = s.ThousandSeparator
	}
	if s.DecimalSeparator != "" {
		cfg.DecimalSeparator = s.DecimalSeparator
	}
	if s.DecimalPlaces != nil {
		cfg.DecimalPlaces = *s.DecimalPlaces
	}
	return cfg.normalized()
}

// SettingsFromRecord reads a loosely typed settings record such as a decoded
// YAML or JSON object or submitted form values. Missing keys, nil and empty
// strings are left unset. A decimal_places value that is not an integer is a
// configuration error.
func SettingsFromRecord(record map[string]interface{}) (Settings, error) {
	var s Settings
	if record == nil {
		return s, nil
	}

	s.Currency = recordString(record, KeyCurrency)
	s.CurrencyPosition = recordString(record, KeyCurrencyPosition)
	s.ThousandSeparator = recordString(record, KeyThousandSeparator)
	s.DecimalSeparator = recordString(record, KeyDecimalSeparator)

	raw, ok := record[KeyDecimalPlaces]
	if !ok || raw == nil {
		return s, nil
	}
	if str, isStr := raw.(string); isStr && str == "" {
		return s, nil
	}
	places, err := cast.ToIntE(raw)
	if err != nil {
		return Settings{}, &formaterror.ConfigurationError{
			Field:  KeyDecimalPlaces,
			Value:  raw,
			Reason: fmt.Sprintf("not an integer: %v", err),
			Err:    formaterror.ErrInvalidDecimalPlaces,
		}
	}
	s.DecimalPlaces = IntPtr(places)
	return s, nil
}

func recordString(record map[string]interface{}, key string) string {
	v, ok := record[key]
	if !ok || v == nil {
		return ""
	}
	return cast.ToString(v)
}
