package normalize

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a numeric substring captured from receipt text into a
// canonical decimal. Receipts from different terminals encode the same-looking
// string with contradictory separator conventions ("1.234,56" vs "1,234.56"
// vs "6.775.90"), so the shape of the raw string decides which one applies:
//
//   - a comma after the last dot: Venezuelan convention, dots are grouping
//     and the last comma is the decimal mark;
//   - two or more dots: thermal-printer form, every dot but the last one is
//     grouping and the last is the decimal mark;
//   - otherwise: US or already-clean value, stray commas removed.
//
// An unparseable numeral is an error, never silently coerced to zero.
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fmt.Errorf("parse amount: empty numeral")
	}

	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		i := strings.LastIndex(s, ",")
		s = strings.ReplaceAll(s[:i], ",", "") + "." + s[i+1:]
	case strings.Count(s, ".") >= 2:
		i := strings.LastIndex(s, ".")
		s = strings.ReplaceAll(s[:i], ".", "") + "." + s[i+1:]
	default:
		s = strings.ReplaceAll(s, ",", "")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return d, nil
}
