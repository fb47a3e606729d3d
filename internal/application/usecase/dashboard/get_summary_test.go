package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

func TestGetSummaryUseCase_Execute(t *testing.T) {
	var transactions []entity.Transaction
	for i := 0; i < 8; i++ {
		amount := decimal.NewFromInt(-10)
		if i%4 == 0 {
			amount = decimal.NewFromInt(100)
		}
		txn := entity.Transaction{
			ID:          int64(i + 1),
			Date:        time.Date(2024, 1, 10-i, 0, 0, 0, 0, time.UTC),
			Amount:      amount,
			Description: "txn",
		}
		txn.Normalize()
		transactions = append(transactions, txn)
	}

	uc := NewGetSummaryUseCase(&fakeSnapshot{
		transactions: transactions,
		categories:   []entity.Category{{ID: 1, Name: "Income"}, {ID: 2, Name: "Travel"}},
		stats:        entity.EmptyStats(),
	})

	out, err := uc.Execute(context.Background(), GetSummaryInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !out.Totals.Income.Equal(decimal.NewFromInt(200)) {
		t.Errorf("expected income 200, got %s", out.Totals.Income)
	}
	if !out.Totals.Expenses.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected expenses 60, got %s", out.Totals.Expenses)
	}
	if !out.Totals.Balance.Equal(decimal.NewFromInt(140)) {
		t.Errorf("expected balance 140, got %s", out.Totals.Balance)
	}
	if out.TransactionCount != 8 || out.CategoryCount != 2 {
		t.Errorf("unexpected counts %d / %d", out.TransactionCount, out.CategoryCount)
	}
	if len(out.RecentTransactions) != DefaultRecentTransactions {
		t.Fatalf("expected %d recent transactions, got %d", DefaultRecentTransactions, len(out.RecentTransactions))
	}
	if out.RecentTransactions[0].ID != 1 {
		t.Errorf("expected delivered order to be kept, got first id %d", out.RecentTransactions[0].ID)
	}
}
