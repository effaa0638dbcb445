package currencyfmt

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

var (
	// Everything except digits, '.' and '-' is noise: symbols, separators, spaces, letters.
	amountNoise = regexp.MustCompile(`[^0-9.\-]`)

	// Longest leading float prefix after the noise is gone: optional sign,
	// integer digits, optional fraction. "1.2.3" reads as 1.2, "5-3" as 5,
	// "--5" and "." as nothing.
	amountPrefix = regexp.MustCompile(`^(-?)(\d*)(?:\.(\d*))?`)
)

// NormalizeAmount converts an arbitrary amount into a decimal. It never fails:
// nil, empty strings and anything without a leading number become zero.
//
// Strings are stripped down to digits, '.' and '-' and the leading valid
// number is kept, so "$1,234.56" reads as 1234.56. Numeric types are converted
// exactly; NaN, infinities and booleans become zero.
func NormalizeAmount(v interface{}) decimal.Decimal {
	d, _ := normalize(v)
	return d
}

// normalize also reports whether the input carried no usable number.
func normalize(v interface{}) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case nil:
		return decimal.Zero, false
	case string:
		return parseLenient(t)
	case []byte:
		return parseLenient(string(t))
	case decimal.Decimal:
		return t, false
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, false
		}
		return *t, false
	case decimal.NullDecimal:
		if !t.Valid {
			return decimal.Zero, false
		}
		return t.Decimal, false
	case float64:
		return fromFloat(t)
	case float32:
		return fromFloat(float64(t))
	case int:
		return decimal.NewFromInt(int64(t)), false
	case int8:
		return decimal.NewFromInt(int64(t)), false
	case int16:
		return decimal.NewFromInt(int64(t)), false
	case int32:
		return decimal.NewFromInt(int64(t)), false
	case int64:
		return decimal.NewFromInt(t), false
	case uint:
		return decimal.NewFromUint64(uint64(t)), false
	case uint8:
		return decimal.NewFromUint64(uint64(t)), false
	case uint16:
		return decimal.NewFromUint64(uint64(t)), false
	case uint32:
		return decimal.NewFromUint64(uint64(t)), false
	case uint64:
		return decimal.NewFromUint64(t), false
	case bool:
		return decimal.Zero, true
	}

	f, err := cast.ToFloat64E(v)
	if err != nil {
		return decimal.Zero, true
	}
	return fromFloat(f)
}

func fromFloat(f float64) (decimal.Decimal, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, true
	}
	return decimal.NewFromFloat(f), false
}

func parseLenient(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Zero, false
	}

	m := amountPrefix.FindStringSubmatch(amountNoise.ReplaceAllString(s, ""))
	if m == nil || (m[2] == "" && m[3] == "") {
		return decimal.Zero, true
	}

	intPart := strings.TrimLeft(m[2], "0")
	if intPart == "" {
		intPart = "0"
	}
	canonical := m[1] + intPart
	if m[3] != "" {
		canonical += "." + m[3]
	}

	d, err := decimal.NewFromString(canonical)
	if err != nil {
		return decimal.Zero, true
	}
	return d, false
}
