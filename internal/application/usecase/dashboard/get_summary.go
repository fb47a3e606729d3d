package dashboard

import (
	"context"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// DefaultRecentTransactions is the size of the recent activity list.
const DefaultRecentTransactions = 5

// GetSummaryInput represents the input for the dashboard summary.
type GetSummaryInput struct {
	RecentLimit int
}

// GetSummaryOutput represents the dashboard headline numbers.
type GetSummaryOutput struct {
	Totals             entity.Totals
	TransactionCount   int
	CategoryCount      int
	RecentTransactions []entity.Transaction
	TopCategories      []entity.CategoryBreakdownEntry
}

// GetSummaryUseCase computes the dashboard from the cached collections.
type GetSummaryUseCase struct {
	snapshot adapter.SnapshotReader
}

// NewGetSummaryUseCase creates a new GetSummaryUseCase instance.
func NewGetSummaryUseCase(snapshot adapter.SnapshotReader) *GetSummaryUseCase {
	return &GetSummaryUseCase{
		snapshot: snapshot,
	}
}

// Execute folds every cached transaction into totals and lists the most recent ones.
func (uc *GetSummaryUseCase) Execute(ctx context.Context, input GetSummaryInput) (*GetSummaryOutput, error) {
	limit := input.RecentLimit
	if limit <= 0 {
		limit = DefaultRecentTransactions
	}

	transactions := uc.snapshot.Transactions()
	recent := transactions
	if limit < len(recent) {
		recent = recent[:limit]
	}

	return &GetSummaryOutput{
		Totals:             format.CalculateTotals(transactions),
		TransactionCount:   len(transactions),
		CategoryCount:      len(uc.snapshot.Categories()),
		RecentTransactions: recent,
		TopCategories:      TopCategories(uc.snapshot.Stats().ByCategory, DefaultTopCategories),
	}, nil
}
