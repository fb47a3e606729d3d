package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/application/usecase/category"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// CategoryRequest represents the request body for creating or updating a category.
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
}

// DeleteCategoryQuery represents the query string of DELETE /categories/:id.
type DeleteCategoryQuery struct {
	ReassignToID *int64 `form:"reassign_to_id" binding:"omitempty,gt=0"`
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID                   *int64 `json:"id"` // null for the synthetic Uncategorized row
	Name                 string `json:"name"`
	Description          string `json:"description"`
	IsDefault            bool   `json:"is_default"`
	TransactionCount     int    `json:"transaction_count"`
	PeriodTotal          string `json:"period_total"`
	FormattedPeriodTotal string `json:"formatted_period_total"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// ToCategoryResponse converts a bare domain Category.
func ToCategoryResponse(c entity.Category) CategoryResponse {
	id := c.ID
	return CategoryResponse{
		ID:                   &id,
		Name:                 c.Name,
		Description:          c.Description,
		IsDefault:            c.IsDefault,
		PeriodTotal:          "0.00",
		FormattedPeriodTotal: format.Currency(decimal.Zero),
	}
}

// ToCategoryListResponse converts a ListCategoriesOutput.
func ToCategoryListResponse(output *category.ListCategoriesOutput) CategoryListResponse {
	categories := make([]CategoryResponse, len(output.Categories))
	for i, row := range output.Categories {
		response := ToCategoryResponse(row.Category)
		if row.Category.ID == 0 {
			response.ID = nil
		}
		response.TransactionCount = row.TransactionCount
		response.PeriodTotal = row.PeriodTotal.StringFixed(2)
		response.FormattedPeriodTotal = format.Currency(row.PeriodTotal)
		categories[i] = response
	}
	return CategoryListResponse{Categories: categories}
}
