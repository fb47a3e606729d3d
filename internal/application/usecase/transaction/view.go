package transaction

import (
	"context"
	"time"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// ViewOutput pairs a persisted view with the listing it currently selects.
type ViewOutput struct {
	View    *entity.TransactionView
	Listing *ListTransactionsOutput
}

// ChangeFilter replaces the filter of view. Any actual change moves the view
// back to page 1; re-sending the same filter keeps the page.
func ChangeFilter(view *entity.TransactionView, spec entity.FilterSpec, now time.Time) bool {
	if SameFilter(view.Filter, spec) {
		return false
	}
	view.Filter = spec
	view.Page = 1
	view.UpdatedAt = now.UTC()
	return true
}

// ChangePage moves view to page, clamped to [1, totalPages].
func ChangePage(view *entity.TransactionView, page, totalPages int, now time.Time) bool {
	clamped := ClampPage(page, totalPages)
	if clamped == view.Page {
		return false
	}
	view.Page = clamped
	view.UpdatedAt = now.UTC()
	return true
}

// renderView lists the page of view, clamping it when the cache shrank since
// the view was saved. It reports whether the page moved.
func renderView(ctx context.Context, list *ListTransactionsUseCase, view *entity.TransactionView, now time.Time) (*ListTransactionsOutput, bool, error) {
	listing, err := list.Execute(ctx, ListTransactionsInput{
		Filter:    view.Filter,
		Page:      max(view.Page, 1),
		PageSize:  PageSize,
		ClampPage: true,
	})
	if err != nil {
		return nil, false, err
	}
	moved := ChangePage(view, listing.Pagination.Page, listing.Pagination.TotalPages, now)
	return listing, moved, nil
}
