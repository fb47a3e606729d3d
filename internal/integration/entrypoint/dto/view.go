package dto

import (
	"time"

	"github.com/finance-tracker/client/internal/application/usecase/transaction"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// ViewFilterRequest represents the filter of a transaction view.
type ViewFilterRequest struct {
	Search     string `json:"search"`
	CategoryID *int64 `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	StartDate  string `json:"start_date,omitempty" binding:"omitempty,iso_date"`
	EndDate    string `json:"end_date,omitempty" binding:"omitempty,iso_date"`
	Type       string `json:"type,omitempty" binding:"omitempty,type_filter"`
}

// FilterSpec converts the request into the pipeline filter.
func (r ViewFilterRequest) FilterSpec() entity.FilterSpec {
	return entity.FilterSpec{
		SearchTerm: r.Search,
		CategoryID: r.CategoryID,
		StartDate:  parseDay(r.StartDate),
		EndDate:    parseDay(r.EndDate),
		Type:       entity.TypeFilter(r.Type),
	}
}

// ViewPageRequest represents the body of PUT /views/:id/page.
type ViewPageRequest struct {
	Page int `json:"page" binding:"required,min=1"`
}

// ViewFilterResponse echoes the active filter of a view.
type ViewFilterResponse struct {
	Search     string `json:"search"`
	CategoryID *int64 `json:"category_id"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
	Type       string `json:"type"`
}

// ViewResponse represents a transaction view and the page it currently shows.
type ViewResponse struct {
	ID        string                  `json:"id"`
	Filter    ViewFilterResponse      `json:"filter"`
	Page      int                     `json:"page"`
	UpdatedAt time.Time               `json:"updated_at"`
	Listing   TransactionListResponse `json:"listing"`
}

// ToViewResponse converts a ViewOutput to a ViewResponse DTO.
func ToViewResponse(output *transaction.ViewOutput) ViewResponse {
	view := output.View
	filterType := string(view.Filter.Type)
	if filterType == "" {
		filterType = string(entity.TypeFilterAll)
	}

	return ViewResponse{
		ID: view.ID.String(),
		Filter: ViewFilterResponse{
			Search:     view.Filter.SearchTerm,
			CategoryID: view.Filter.CategoryID,
			StartDate:  formatDay(view.Filter.StartDate),
			EndDate:    formatDay(view.Filter.EndDate),
			Type:       filterType,
		},
		Page:      view.Page,
		UpdatedAt: view.UpdatedAt,
		Listing:   ToTransactionListResponse(output.Listing),
	}
}
