// Package category contains category-related use cases.
package category

import (
	"fmt"
	"strings"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

const (
	// MaxCategoryNameLength is the maximum allowed length for category names.
	MaxCategoryNameLength = 50
	// MaxCategoryDescriptionLength is the maximum allowed length for category descriptions.
	MaxCategoryDescriptionLength = 255
)

func validateInput(input entity.CategoryInput) (entity.CategoryInput, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Description = strings.TrimSpace(input.Description)

	if input.Name == "" {
		return input, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameRequired,
			"category name is required",
			domainerror.ErrCategoryNameRequired,
		)
	}
	if len([]rune(input.Name)) > MaxCategoryNameLength {
		return input, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryNameTooLong,
			fmt.Sprintf("category name must not exceed %d characters", MaxCategoryNameLength),
			domainerror.ErrCategoryNameTooLong,
		)
	}
	if len([]rune(input.Description)) > MaxCategoryDescriptionLength {
		return input, domainerror.NewCategoryError(
			domainerror.ErrCodeCategoryDescTooLong,
			fmt.Sprintf("category description must not exceed %d characters", MaxCategoryDescriptionLength),
			domainerror.ErrCategoryDescriptionTooLong,
		)
	}
	return input, nil
}

// nameTaken reports whether another cached category already uses name.
func nameTaken(categories []entity.Category, name string, exceptID int64) bool {
	for _, c := range categories {
		if c.ID != exceptID && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func validateID(id int64) error {
	if id <= 0 {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeInvalidCategoryID,
			"category id must be positive",
			domainerror.ErrCategoryNotFound,
		)
	}
	return nil
}
