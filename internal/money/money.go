// Package money formats decimal amounts for display.
package money

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders amount in the currency's notation, rounded to its minor
// unit. Unknown currency codes fall back to "1234.50 XYZ".
func Format(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(currency)

	cur := money.GetCurrency(code)
	if cur == nil {
		return amount.StringFixed(2) + " " + code
	}

	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))

	return cur.Formatter().Format(minor.IntPart())
}

// Signed is Format with an explicit "+" on positive amounts.
func Signed(amount decimal.Decimal, currency string) string {
	if amount.IsPositive() {
		return "+" + Format(amount, currency)
	}

	return Format(amount, currency)
}

// Percent renders p with two decimals, or "n/a" when it is undefined.
func Percent(p decimal.NullDecimal) string {
	if !p.Valid {
		return "n/a"
	}

	s := p.Decimal.StringFixed(2) + "%"
	if p.Decimal.IsPositive() {
		return "+" + s
	}

	return s
}
