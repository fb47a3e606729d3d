package format

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// CalculateTotals folds the transactions into income, expenses and balance.
// Income sums positive amounts, expenses sum the absolute value of the rest, and
// Balance always equals Income minus Expenses.
func CalculateTotals(transactions []entity.Transaction) entity.Totals {
	totals := entity.Totals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Balance:  decimal.Zero,
	}
	for _, txn := range transactions {
		if txn.Amount.IsPositive() {
			totals.Income = totals.Income.Add(txn.Amount)
		} else {
			totals.Expenses = totals.Expenses.Add(txn.Amount.Abs())
		}
		totals.Balance = totals.Balance.Add(txn.Amount)
	}
	return totals
}
