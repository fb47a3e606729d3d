package transaction

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// CreateTransactionInput represents the input for transaction creation.
type CreateTransactionInput struct {
	Date        time.Time
	Amount      decimal.Decimal // Negative for expenses
	Description string
	CategoryID  *int64
}

// CreateTransactionOutput represents the output of transaction creation.
type CreateTransactionOutput struct {
	Transaction *entity.Transaction
}

// CreateTransactionUseCase validates a new transaction and hands it to the store.
type CreateTransactionUseCase struct {
	store adapter.TransactionStore
}

// NewCreateTransactionUseCase creates a new CreateTransactionUseCase instance.
func NewCreateTransactionUseCase(store adapter.TransactionStore) *CreateTransactionUseCase {
	return &CreateTransactionUseCase{
		store: store,
	}
}

// Execute performs the transaction creation.
func (uc *CreateTransactionUseCase) Execute(ctx context.Context, input CreateTransactionInput) (*CreateTransactionOutput, error) {
	txnInput := entity.TransactionInput{
		Date:        input.Date,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		CategoryID:  input.CategoryID,
		Source:      entity.TransactionSourceManual,
	}
	if err := txnInput.Validate(); err != nil {
		return nil, err
	}

	created, err := uc.store.CreateTransaction(ctx, txnInput)
	if err != nil {
		return nil, err
	}

	slog.Info("Transaction created",
		"transaction_id", created.ID,
		"is_expense", created.IsExpense,
	)

	return &CreateTransactionOutput{
		Transaction: created,
	}, nil
}
