package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// UpdateViewInput represents a filter change, a page change, or both.
// When both are present and the filter actually changed, the page is ignored.
type UpdateViewInput struct {
	ViewID uuid.UUID
	Filter *entity.FilterSpec
	Page   *int
}

// UpdateViewUseCase applies filter and page events to a persisted view.
type UpdateViewUseCase struct {
	views adapter.ViewStateRepository
	list  *ListTransactionsUseCase
	now   func() time.Time
}

// NewUpdateViewUseCase creates a new UpdateViewUseCase instance.
func NewUpdateViewUseCase(views adapter.ViewStateRepository, list *ListTransactionsUseCase) *UpdateViewUseCase {
	return &UpdateViewUseCase{
		views: views,
		list:  list,
		now:   time.Now,
	}
}

// Execute performs the view update.
func (uc *UpdateViewUseCase) Execute(ctx context.Context, input UpdateViewInput) (*ViewOutput, error) {
	if input.Filter != nil {
		if err := ValidateFilter(*input.Filter); err != nil {
			return nil, err
		}
	}
	if input.Page != nil && *input.Page < 1 {
		return nil, domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidPage,
			"page must be at least 1",
			domainerror.ErrInvalidPage,
		)
	}

	view, err := uc.views.FindByID(ctx, input.ViewID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	filterChanged := false
	if input.Filter != nil {
		filterChanged = ChangeFilter(view, *input.Filter, now)
	}
	if input.Page != nil && !filterChanged {
		view.Page = *input.Page
		view.UpdatedAt = now.UTC()
	}

	listing, _, err := renderView(ctx, uc.list, view, now)
	if err != nil {
		return nil, err
	}

	if err := uc.views.Save(ctx, view); err != nil {
		return nil, fmt.Errorf("failed to save view: %w", err)
	}

	return &ViewOutput{View: view, Listing: listing}, nil
}
