package transaction

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/application/adapter"
)

// DeleteViewUseCase discards a persisted view.
type DeleteViewUseCase struct {
	views adapter.ViewStateRepository
}

// NewDeleteViewUseCase creates a new DeleteViewUseCase instance.
func NewDeleteViewUseCase(views adapter.ViewStateRepository) *DeleteViewUseCase {
	return &DeleteViewUseCase{views: views}
}

// Execute deletes the view.
func (uc *DeleteViewUseCase) Execute(ctx context.Context, viewID uuid.UUID) error {
	return uc.views.Delete(ctx, viewID)
}
