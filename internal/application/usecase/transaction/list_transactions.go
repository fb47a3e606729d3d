package transaction

import (
	"context"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// ListTransactionsInput represents the input for listing transactions.
type ListTransactionsInput struct {
	Filter    entity.FilterSpec
	Page      int
	PageSize  int
	ClampPage bool // Move an out-of-range page to the nearest valid one
}

// PaginationOutput represents pagination information in the output.
type PaginationOutput struct {
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// ListTransactionsOutput represents the output of listing transactions.
type ListTransactionsOutput struct {
	Transactions []entity.Transaction
	Groups       []DayGroup
	Pagination   PaginationOutput
	Totals       entity.Totals // Over the whole filtered set, not just the page
}

// ListTransactionsUseCase derives a page of the cached transactions.
type ListTransactionsUseCase struct {
	snapshot adapter.SnapshotReader
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(snapshot adapter.SnapshotReader) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{
		snapshot: snapshot,
	}
}

// Execute filters, paginates and groups the cached transactions.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	if err := ValidateFilter(input.Filter); err != nil {
		return nil, err
	}

	page := input.Page
	if page == 0 {
		page = 1
	}
	if page < 1 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPage,
			"page must be at least 1",
			domainerror.ErrInvalidPage,
		)
	}

	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = PageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filtered := Apply(uc.snapshot.Transactions(), input.Filter)
	totalPages := TotalPages(len(filtered), pageSize)
	if input.ClampPage {
		page = ClampPage(page, totalPages)
	}
	items := Paginate(filtered, page, pageSize)

	return &ListTransactionsOutput{
		Transactions: items,
		Groups:       GroupByDay(items),
		Pagination: PaginationOutput{
			Page:       page,
			PageSize:   pageSize,
			Total:      len(filtered),
			TotalPages: totalPages,
		},
		Totals: format.CalculateTotals(filtered),
	}, nil
}
