package category

import (
	"context"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// UpdateCategoryInput represents the input for category update.
type UpdateCategoryInput struct {
	CategoryID  int64
	Name        string
	Description string
}

// UpdateCategoryOutput represents the output of category update.
type UpdateCategoryOutput struct {
	Category *entity.Category
}

// UpdateCategoryUseCase handles category updates. Default categories may be renamed.
type UpdateCategoryUseCase struct {
	snapshot adapter.SnapshotReader
	store    adapter.CategoryStore
}

// NewUpdateCategoryUseCase creates a new UpdateCategoryUseCase instance.
func NewUpdateCategoryUseCase(snapshot adapter.SnapshotReader, store adapter.CategoryStore) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{
		snapshot: snapshot,
		store:    store,
	}
}

// Execute performs the category update.
func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, input UpdateCategoryInput) (*UpdateCategoryOutput, error) {
	if err := validateID(input.CategoryID); err != nil {
		return nil, err
	}

	categoryInput, err := validateInput(entity.CategoryInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	categories := uc.snapshot.Categories()
	if entity.FindCategory(categories, input.CategoryID) == nil {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNotFound,
			"category not found",
			domainerror.ErrCategoryNotFound,
		)
	}
	if nameTaken(categories, categoryInput.Name, input.CategoryID) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category, err := uc.store.UpdateCategory(ctx, input.CategoryID, categoryInput)
	if err != nil {
		return nil, err
	}

	return &UpdateCategoryOutput{
		Category: category,
	}, nil
}
