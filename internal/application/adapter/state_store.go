// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// TransactionStore defines the transaction mutations exposed by the state store.
// Every successful call leaves the cache refreshed from the finance API.
type TransactionStore interface {
	CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error)
	UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error)
	DeleteTransaction(ctx context.Context, id int64) error
	ImportTransactions(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error)
}

// CategoryStore defines the category mutations exposed by the state store.
type CategoryStore interface {
	CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, input entity.CategoryInput) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64, reassignTo *int64) error
}
