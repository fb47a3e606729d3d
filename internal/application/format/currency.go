// Package format holds the display and normalization helpers shared by the
// HTTP surface and the analytics use cases. Every function is pure.
package format

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency code is given.
const DefaultCurrency = "USD"

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"BRL": "R$",
	"CAD": "CA$",
	"AUD": "A$",
	"MXN": "MX$",
	"INR": "₹",
}

// Currency formats amount in US dollars, e.g. "-$1,234.50".
func Currency(amount decimal.Decimal) string {
	return CurrencyIn(amount, DefaultCurrency)
}

// CurrencyIn formats the absolute value of amount with two fraction digits and
// the symbol of code. A negative amount gets "-" in front of the symbol.
// Codes without a known symbol are written as "XYZ 1.00".
func CurrencyIn(amount decimal.Decimal, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = DefaultCurrency
	}

	number := groupThousands(amount.Abs().StringFixed(2))

	var formatted string
	if symbol, ok := currencySymbols[code]; ok {
		formatted = symbol + number
	} else {
		formatted = code + " " + number
	}

	if amount.IsNegative() {
		return "-" + formatted
	}
	return formatted
}

// groupThousands inserts "," separators into the integer part of a plain decimal string.
func groupThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")
	if len(intPart) <= 3 {
		return s
	}

	var b strings.Builder
	lead := len(intPart) % 3
	if lead > 0 {
		b.WriteString(intPart[:lead])
	}
	for i := lead; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}
