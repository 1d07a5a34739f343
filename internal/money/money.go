// Package money converts between cent amounts and their decimal string forms.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Parse converts a decimal amount string ("25.00") into cents.
func Parse(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}

	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart(), nil
}

// ParseEuropean converts a European-formatted amount string into cents.
// Examples: "1.234,56" -> 123456, "-588,74" -> -58874, "10,00" -> 1000.
func ParseEuropean(s string) (int64, error) {
	clean := strings.ReplaceAll(s, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return Parse(clean)
}

// Format renders cents as a plain decimal string with two places.
func Format(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
