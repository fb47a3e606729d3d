package format

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		expected string
	}{
		{"negative amount puts sign before symbol", decimal.NewFromFloat(-42.5), "-$42.50"},
		{"positive amount", decimal.NewFromFloat(42.5), "$42.50"},
		{"zero", decimal.Zero, "$0.00"},
		{"thousands are grouped", decimal.RequireFromString("1234567.891"), "$1,234,567.89"},
		{"exactly one thousand", decimal.NewFromInt(-1000), "-$1,000.00"},
		{"rounds half away from zero", decimal.RequireFromString("0.005"), "$0.01"},
		{"three digit integer part is not grouped", decimal.RequireFromString("999.99"), "$999.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Currency(tt.amount)
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestCurrencyIn(t *testing.T) {
	t.Run("known symbol", func(t *testing.T) {
		got := CurrencyIn(decimal.NewFromFloat(-3.2), "eur")
		if got != "-€3.20" {
			t.Errorf("expected -€3.20, got %q", got)
		}
	})

	t.Run("unknown code is written out", func(t *testing.T) {
		got := CurrencyIn(decimal.NewFromInt(1500), "CHF")
		if got != "CHF 1,500.00" {
			t.Errorf("expected CHF 1,500.00, got %q", got)
		}
	})

	t.Run("empty code defaults to USD", func(t *testing.T) {
		got := CurrencyIn(decimal.NewFromInt(7), "")
		if got != "$7.00" {
			t.Errorf("expected $7.00, got %q", got)
		}
	})
}
