// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// TransactionQuery holds the server-side filters accepted by the transaction listing.
// Zero values are omitted from the request.
type TransactionQuery struct {
	Skip       int
	Limit      int
	StartDate  *time.Time
	EndDate    *time.Time
	CategoryID *int64
	Search     string
	IsExpense  *bool
}

// FinanceAPI is the remote collaborator that owns transactions, categories,
// imports and the range-scoped statistics.
type FinanceAPI interface {
	// ListTransactions retrieves transactions matching the query.
	ListTransactions(ctx context.Context, query TransactionQuery) ([]entity.Transaction, error)

	// ListCategories retrieves every category.
	ListCategories(ctx context.Context) ([]entity.Category, error)

	// CreateDefaultCategories seeds the system categories. It is idempotent and
	// returns only the categories it had to create.
	CreateDefaultCategories(ctx context.Context) ([]entity.Category, error)

	// SpendingByCategory retrieves the expense breakdown for the date range.
	SpendingByCategory(ctx context.Context, dateRange entity.DateRange) ([]entity.CategoryBreakdownEntry, error)

	// SpendingTrends retrieves spending periods, most recent first.
	SpendingTrends(ctx context.Context, query entity.TrendsQuery) (*entity.Trends, error)

	// ImportFile uploads a bank statement and returns the transactions it produced.
	ImportFile(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error)

	// CreateTransaction creates a transaction.
	CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error)

	// UpdateTransaction replaces the writable fields of a transaction.
	UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error)

	// DeleteTransaction deletes a transaction.
	DeleteTransaction(ctx context.Context, id int64) error

	// CreateCategory creates a custom category.
	CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error)

	// UpdateCategory renames or re-describes a category.
	UpdateCategory(ctx context.Context, id int64, input entity.CategoryInput) (*entity.Category, error)

	// DeleteCategory deletes a category, optionally moving its transactions to reassignTo.
	DeleteCategory(ctx context.Context, id int64, reassignTo *int64) error
}
