package transaction

import (
	"context"

	"github.com/finance-tracker/client/internal/application/adapter"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// DeleteTransactionInput represents the input for transaction deletion.
type DeleteTransactionInput struct {
	TransactionID int64
}

// DeleteTransactionUseCase handles transaction deletion.
type DeleteTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(store adapter.TransactionStore) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{
		store: store,
	}
}

// Execute performs the transaction deletion.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) error {
	if input.TransactionID <= 0 {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionID,
			"transaction id must be positive",
			domainerror.ErrTransactionNotFound,
		)
	}
	return uc.store.DeleteTransaction(ctx, input.TransactionID)
}
