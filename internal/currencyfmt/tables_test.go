package currencyfmt

import (
	"sort"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupSymbol(t *testing.T) {
	assert.Equal(t, "$", LookupSymbol("USD"))
	assert.Equal(t, "$", LookupSymbol("usd"))
	assert.Equal(t, "€", LookupSymbol("Eur"))
	assert.Equal(t, "₿", LookupSymbol("BTC"))
	assert.Equal(t, "Ξ", LookupSymbol("eth"))
}

func TestLookupSymbol_FallsBackToUppercasedCode(t *testing.T) {
	for _, code := range []string{"xyz", "ABCD", "doge", "", "usdt"} {
		_, known := symbols[code]
		require.False(t, known)
		assert.Equal(t, toUpperASCII(code), LookupSymbol(code))
	}
}

func toUpperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - 32
		}
	}
	return string(b)
}

func TestSymbolTable(t *testing.T) {
	all := AllSymbols()
	assert.GreaterOrEqual(t, len(all), 70)

	for code, sym := range all {
		assert.Equal(t, toUpperASCII(code), code, "codes are stored uppercase")
		n := utf8.RuneCountInString(sym)
		assert.True(t, n >= 1 && n <= 5, "symbol for %s has %d characters", code, n)
	}

	all["USD"] = "changed"
	assert.Equal(t, "$", LookupSymbol("USD"), "AllSymbols returns a copy")
}

func TestCurrencyCodes(t *testing.T) {
	codes := CurrencyCodes()
	assert.GreaterOrEqual(t, len(codes), 150)

	assert.True(t, sort.SliceIsSorted(codes, func(i, j int) bool { return codes[i].Code < codes[j].Code }))

	seen := make(map[string]bool, len(codes))
	for _, opt := range codes {
		assert.False(t, seen[opt.Code], "duplicate code %s", opt.Code)
		seen[opt.Code] = true
		assert.NotEmpty(t, opt.Name)
	}

	codes[0].Name = "changed"
	assert.NotEqual(t, "changed", CurrencyCodes()[0].Name)
}

func TestCurrencyName(t *testing.T) {
	name, ok := CurrencyName("chf")
	assert.True(t, ok)
	assert.Equal(t, "Swiss Franc", name)

	_, ok = CurrencyName("BTC")
	assert.False(t, ok, "the catalog is independent of the symbol table")
}

func TestPositionOptions(t *testing.T) {
	opts := PositionOptions()
	require.Len(t, opts, 4)

	assert.Equal(t, []Position{PositionLeft, PositionRight, PositionLeftSpace, PositionRightSpace},
		[]Position{opts[0].Position, opts[1].Position, opts[2].Position, opts[3].Position})
	assert.Equal(t, "Left ($100)", opts[0].Label)

	for _, opt := range opts {
		assert.True(t, opt.Position.IsValid())
	}
}

func TestPosition_IsValid(t *testing.T) {
	assert.True(t, PositionRightSpace.IsValid())
	assert.False(t, Position("LEFT").IsValid())
	assert.True(t, ParsePosition(" LEFT ").IsValid())
	assert.False(t, Position("").IsValid())
}
