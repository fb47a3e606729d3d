package transaction

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// CreateViewInput represents the input for view creation.
type CreateViewInput struct {
	Filter entity.FilterSpec
}

// CreateViewUseCase opens a new persisted transaction view on page 1.
type CreateViewUseCase struct {
	views adapter.ViewStateRepository
	list  *ListTransactionsUseCase
	now   func() time.Time
}

// NewCreateViewUseCase creates a new CreateViewUseCase instance.
func NewCreateViewUseCase(views adapter.ViewStateRepository, list *ListTransactionsUseCase) *CreateViewUseCase {
	return &CreateViewUseCase{
		views: views,
		list:  list,
		now:   time.Now,
	}
}

// Execute creates the view and returns its first page.
func (uc *CreateViewUseCase) Execute(ctx context.Context, input CreateViewInput) (*ViewOutput, error) {
	if err := ValidateFilter(input.Filter); err != nil {
		return nil, err
	}

	view := &entity.TransactionView{
		ID:        uuid.New(),
		Filter:    input.Filter,
		Page:      1,
		UpdatedAt: uc.now().UTC(),
	}

	listing, _, err := renderView(ctx, uc.list, view, uc.now())
	if err != nil {
		return nil, err
	}

	if err := uc.views.Save(ctx, view); err != nil {
		return nil, fmt.Errorf("failed to save view: %w", err)
	}

	return &ViewOutput{View: view, Listing: listing}, nil
}
