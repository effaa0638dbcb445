package currencyfmt

import "strings"

// Position controls where the currency symbol is placed relative to the number.
type Position string

const (
	PositionLeft       Position = "left"        // $100
	PositionRight      Position = "right"       // 100$
	PositionLeftSpace  Position = "left_space"  // $ 100
	PositionRightSpace Position = "right_space" // 100 $
)

// IsValid reports whether p is one of the four known positions.
func (p Position) IsValid() bool {
	switch p {
	case PositionLeft, PositionRight, PositionLeftSpace, PositionRightSpace:
		return true
	}
	return false
}

// ParsePosition normalizes case and surrounding whitespace. The result is not
// validated; use IsValid.
func ParsePosition(s string) Position {
	return Position(strings.ToLower(strings.TrimSpace(s)))
}

// place combines a rendered number and symbol.
func (p Position) place(number, symbol string) string {
	switch p {
	case PositionRight:
		return number + symbol
	case PositionLeftSpace:
		return symbol + " " + number
	case PositionRightSpace:
		return number + " " + symbol
	default:
		return symbol + number
	}
}
