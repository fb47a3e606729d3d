package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/application/adapter"
)

// GetViewInput represents the input for reading a view.
type GetViewInput struct {
	ViewID uuid.UUID
}

// GetViewUseCase recomputes a persisted view against the current cache.
type GetViewUseCase struct {
	views adapter.ViewStateRepository
	list  *ListTransactionsUseCase
	now   func() time.Time
}

// NewGetViewUseCase creates a new GetViewUseCase instance.
func NewGetViewUseCase(views adapter.ViewStateRepository, list *ListTransactionsUseCase) *GetViewUseCase {
	return &GetViewUseCase{
		views: views,
		list:  list,
		now:   time.Now,
	}
}

// Execute loads the view and lists its current page.
func (uc *GetViewUseCase) Execute(ctx context.Context, input GetViewInput) (*ViewOutput, error) {
	view, err := uc.views.FindByID(ctx, input.ViewID)
	if err != nil {
		return nil, err
	}

	listing, moved, err := renderView(ctx, uc.list, view, uc.now())
	if err != nil {
		return nil, err
	}

	if moved {
		if err := uc.views.Save(ctx, view); err != nil {
			return nil, fmt.Errorf("failed to save view: %w", err)
		}
		slog.Debug("View page clamped", "view_id", view.ID, "page", view.Page)
	}

	return &ViewOutput{View: view, Listing: listing}, nil
}
