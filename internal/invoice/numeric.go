package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Entered numbers whose magnitude exceeds maxMagnitude, or whose exponent
// lies outside ±maxExponent, are treated as malformed. The exponent is
// checked first so that no arithmetic ever runs on an enormous scale.
const maxExponent = 308

var maxMagnitude = decimal.New(1, 15)

// ParseLenientNumber parses user-entered numeric text. Empty, malformed,
// NaN, infinite and out-of-range input all yield 0; it never fails.
func ParseLenientNumber(s string) float64 {
	return parseDecimal(s).InexactFloat64()
}

func parseDecimal(s string) decimal.Decimal {
	d, ok := parseBounded(s)
	if !ok {
		return decimal.Zero
	}
	return d
}

// parseBounded parses s and reports whether it is a usable number. Blank
// text parses as zero.
func parseBounded(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	if exp := d.Exponent(); exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}
	if d.Abs().GreaterThan(maxMagnitude) {
		return decimal.Zero, false
	}
	return d, true
}

// IsNumericText reports whether s parses as an in-range number. Blank text
// counts as numeric (it reads as zero).
func IsNumericText(s string) bool {
	_, ok := parseBounded(s)
	return ok
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatFixed2 renders v with exactly two decimals and no grouping.
func FormatFixed2(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}
