package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

func TestToTransactionResponse(t *testing.T) {
	base := entity.Transaction{
		ID:        7,
		Date:      time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		Amount:    decimal.RequireFromString("-42.5"),
		IsExpense: true,
	}

	tests := []struct {
		name        string
		description string
		want        string
	}{
		{"short description is kept", "Groceries", "Groceries"},
		{"exactly at the limit is kept", "Monthly subscription renewal 1", "Monthly subscription renewal 1"},
		{"long description is truncated", "Amazon Marketplace order 112-7788 for household items", "Amazon Marketplace order 11..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := base
			txn.Description = tt.description

			got := ToTransactionResponse(txn)

			if got.Description != tt.description {
				t.Errorf("expected full description %q, got %q", tt.description, got.Description)
			}
			if got.ShortDescription != tt.want {
				t.Errorf("expected short description %q, got %q", tt.want, got.ShortDescription)
			}
		})
	}

	t.Run("formats amount and date", func(t *testing.T) {
		got := ToTransactionResponse(base)
		if got.FormattedAmount != "-$42.50" {
			t.Errorf("expected -$42.50, got %q", got.FormattedAmount)
		}
		if got.CategoryName != entity.UncategorizedName {
			t.Errorf("expected %q, got %q", entity.UncategorizedName, got.CategoryName)
		}
	})
}
