package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Catalog sources mix numeric prices with display strings such as "300$"
// or "$299.99 CAD". Everything is normalized to integer cents here, at
// the ingestion boundary; nothing downstream parses price text.

// CentsFromString parses a currency amount into integer cents.
func CentsFromString(raw string) (int64, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimSuffix(cleaned, "CAD")
	cleaned = strings.ReplaceAll(cleaned, "$", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", raw, err)
	}
	return centsFromDecimal(d)
}

// CentsFromFloat converts a numeric amount (dollars) into integer cents.
func CentsFromFloat(amount float64) (int64, error) {
	return centsFromDecimal(decimal.NewFromFloat(amount))
}

func centsFromDecimal(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, fmt.Errorf("negative amount %s", d)
	}
	return d.Shift(2).Round(0).IntPart(), nil
}

// FormatCAD renders cents as a display amount, e.g. 30000 -> "300.00$ CAD".
func FormatCAD(cents int64) string {
	return decimal.NewFromInt(cents).Shift(-2).StringFixed(2) + "$ CAD"
}
