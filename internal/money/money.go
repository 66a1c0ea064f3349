// Package money holds display formatting for Brazilian Real amounts.
// Formatting is presentation-only and never feeds back into arithmetic.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount as user-facing currency text with the comma
// decimal separator, e.g. "R$ 89,90".
func FormatBRL(d decimal.Decimal) string {
	return "R$ " + strings.Replace(d.StringFixed(2), ".", ",", 1)
}

// FormatShipping renders a shipping fee, with the zero fee shown as free.
func FormatShipping(d decimal.Decimal) string {
	if d.IsZero() {
		return "Grátis"
	}
	return FormatBRL(d)
}
