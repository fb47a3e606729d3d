package transaction

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// UpdateTransactionInput represents the input for transaction update.
type UpdateTransactionInput struct {
	TransactionID int64
	Date          time.Time
	Amount        decimal.Decimal
	Description   string
	CategoryID    *int64
}

// UpdateTransactionOutput represents the output of transaction update.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase handles transaction updates.
type UpdateTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(store adapter.TransactionStore) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{
		store: store,
	}
}

// Execute performs the transaction update. The finance API replaces every
// writable field, so the input must be complete.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	if input.TransactionID <= 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionID,
			"transaction id must be positive",
			domainerror.ErrTransactionNotFound,
		)
	}

	txnInput := entity.TransactionInput{
		Date:        input.Date,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
	}
	if err := txnInput.Validate(); err != nil {
		return nil, err
	}

	updated, err := uc.store.UpdateTransaction(ctx, input.TransactionID, txnInput)
	if err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{
		Transaction: updated,
	}, nil
}
