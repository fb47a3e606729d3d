package category

import (
	"context"
	"log/slog"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// CreateCategoryInput represents the input for category creation.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateCategoryOutput represents the output of category creation.
type CreateCategoryOutput struct {
	Category *entity.Category
}

// CreateCategoryUseCase handles category creation logic.
type CreateCategoryUseCase struct {
	snapshot adapter.SnapshotReader
	store    adapter.CategoryStore
}

// NewCreateCategoryUseCase creates a new CreateCategoryUseCase instance.
func NewCreateCategoryUseCase(snapshot adapter.SnapshotReader, store adapter.CategoryStore) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{
		snapshot: snapshot,
		store:    store,
	}
}

// Execute performs the category creation.
func (uc *CreateCategoryUseCase) Execute(ctx context.Context, input CreateCategoryInput) (*CreateCategoryOutput, error) {
	categoryInput, err := validateInput(entity.CategoryInput{
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		return nil, err
	}

	// The API enforces uniqueness too; checking the cache first saves a round trip.
	if nameTaken(uc.snapshot.Categories(), categoryInput.Name, 0) {
		return nil, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameExists,
			"a category with this name already exists",
			domainerror.ErrCategoryNameExists,
		)
	}

	category, err := uc.store.CreateCategory(ctx, categoryInput)
	if err != nil {
		return nil, err
	}

	slog.Info("Category created", "category_id", category.ID, "name", category.Name)

	return &CreateCategoryOutput{
		Category: category,
	}, nil
}
