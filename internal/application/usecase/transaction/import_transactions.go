package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// MaxImportFileSize bounds uploaded bank statements.
const MaxImportFileSize = 10 << 20

// ImportTransactionsInput represents the input for a statement import.
type ImportTransactionsInput struct {
	FileName string
	Content  []byte
}

// ImportTransactionsOutput represents the output of a statement import.
type ImportTransactionsOutput struct {
	Imported []entity.Transaction // As returned by the import, after server-side dedup
	Totals   entity.Totals
}

// ImportTransactionsUseCase forwards a statement file to the store.
type ImportTransactionsUseCase struct {
	store adapter.TransactionStore
}

// NewImportTransactionsUseCase creates a new ImportTransactionsUseCase instance.
func NewImportTransactionsUseCase(store adapter.TransactionStore) *ImportTransactionsUseCase {
	return &ImportTransactionsUseCase{
		store: store,
	}
}

// Execute performs the import. Parsing happens on the server.
func (uc *ImportTransactionsUseCase) Execute(ctx context.Context, input ImportTransactionsInput) (*ImportTransactionsOutput, error) {
	if len(input.Content) == 0 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidImportFile,
			"file is empty",
			domainerror.ErrInvalidImportFile,
		)
	}
	if len(input.Content) > MaxImportFileSize {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidImportFile,
			fmt.Sprintf("file must not exceed %d bytes", MaxImportFileSize),
			domainerror.ErrInvalidImportFile,
		)
	}

	name := filepath.Base(strings.TrimSpace(input.FileName))
	if name == "." || name == string(filepath.Separator) {
		name = "statement"
	}

	imported, err := uc.store.ImportTransactions(ctx, entity.ImportFile{
		Name:    name,
		Content: input.Content,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("Transactions imported", "file", name, "count", len(imported))

	return &ImportTransactionsOutput{
		Imported: imported,
		Totals:   format.CalculateTotals(imported),
	}, nil
}
