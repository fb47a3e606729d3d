package category

import (
	"context"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// DeleteCategoryInput represents the input for category deletion.
type DeleteCategoryInput struct {
	CategoryID int64
	ReassignTo *int64 // Receives the deleted category's transactions; nil leaves them uncategorized
}

// DeleteCategoryUseCase handles category deletion logic.
type DeleteCategoryUseCase struct {
	snapshot adapter.SnapshotReader
	store    adapter.CategoryStore
}

// NewDeleteCategoryUseCase creates a new DeleteCategoryUseCase instance.
func NewDeleteCategoryUseCase(snapshot adapter.SnapshotReader, store adapter.CategoryStore) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{
		snapshot: snapshot,
		store:    store,
	}
}

// Execute performs the category deletion.
func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, input DeleteCategoryInput) error {
	if err := validateID(input.CategoryID); err != nil {
		return err
	}

	categories := uc.snapshot.Categories()
	category := entity.FindCategory(categories, input.CategoryID)
	if category == nil {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}

	if input.ReassignTo != nil {
		if *input.ReassignTo == input.CategoryID || entity.FindCategory(categories, *input.ReassignTo) == nil {
			return domainerror.NewCategoryError(
				domainerror.ErrCodeInvalidReassignTarget,
				"reassign target must be another existing category",
				domainerror.ErrInvalidReassignTarget,
			)
		}
	}

	// Default categories are rejected again by the store.
	return uc.store.DeleteCategory(ctx, input.CategoryID, input.ReassignTo)
}
