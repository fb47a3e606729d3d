package adapters

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// apiTime accepts the finance API's datetimes, which carry no zone, as well
// as RFC 3339 and plain dates. Zone-less values are read as UTC.
type apiTime struct {
	time.Time
}

func (t *apiTime) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("datetime must be a string: %w", err)
	}
	parsed, ok := format.ParseDate(raw)
	if !ok {
		return fmt.Errorf("unparseable datetime %q", raw)
	}
	t.Time = parsed
	return nil
}

type apiCategory struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IsDefault   bool    `json:"is_default"`
	CreatedAt   apiTime `json:"created_at"`
	UpdatedAt   apiTime `json:"updated_at"`
}

func (c apiCategory) toEntity() entity.Category {
	category := entity.Category{
		ID:        c.ID,
		Name:      c.Name,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
	if c.Description != nil {
		category.Description = *c.Description
	}
	return category
}

type apiTransaction struct {
	ID                  int64           `json:"id"`
	Date                apiTime         `json:"date"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
	IsExpense           bool            `json:"is_expense"`
	Source              string          `json:"source"`
	CategoryID          *int64          `json:"category_id"`
	OriginalDescription *string         `json:"original_description"`
	ImportID            *string         `json:"import_id"`
	Category            *apiCategory    `json:"category"`
	CreatedAt           apiTime         `json:"created_at"`
	UpdatedAt           apiTime         `json:"updated_at"`
}

func (t apiTransaction) toEntity() entity.Transaction {
	txn := entity.Transaction{
		ID:          t.ID,
		Date:        t.Date.Time,
		Amount:      t.Amount,
		Description: t.Description,
		CategoryID:  t.CategoryID,
		IsExpense:   t.IsExpense,
		Source:      t.Source,
		ImportID:    t.ImportID,
		CreatedAt:   t.CreatedAt.Time,
		UpdatedAt:   t.UpdatedAt.Time,
	}
	if t.OriginalDescription != nil {
		txn.OriginalDescription = *t.OriginalDescription
	}
	if t.Category != nil {
		category := t.Category.toEntity()
		txn.Category = &category
	}
	return txn
}

func toTransactions(items []apiTransaction) []entity.Transaction {
	result := make([]entity.Transaction, 0, len(items))
	for _, item := range items {
		result = append(result, item.toEntity())
	}
	return result
}

// apiTransactionRequest is the TransactionCreate body. Amount is sent as a
// JSON number.
type apiTransactionRequest struct {
	Date        string      `json:"date"`
	Amount      json.Number `json:"amount"`
	Description string      `json:"description"`
	IsExpense   bool        `json:"is_expense"`
	Source      string      `json:"source"`
	CategoryID  *int64      `json:"category_id"`
}

func newTransactionRequest(input entity.TransactionInput) apiTransactionRequest {
	source := input.Source
	if source == "" {
		source = entity.TransactionSourceManual
	}
	return apiTransactionRequest{
		Date:        input.Date.Format("2006-01-02T15:04:05"),
		Amount:      json.Number(input.Amount.String()),
		Description: input.Description,
		IsExpense:   input.IsExpense(),
		Source:      source,
		CategoryID:  input.CategoryID,
	}
}

type apiCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func newCategoryRequest(input entity.CategoryInput) apiCategoryRequest {
	req := apiCategoryRequest{Name: input.Name}
	if input.Description != "" {
		description := input.Description
		req.Description = &description
	}
	return req
}

type apiBreakdownEntry struct {
	CategoryID   *int64          `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Total        decimal.Decimal `json:"total"`
}

type apiTopCategory struct {
	Name  string          `json:"name"`
	Total decimal.Decimal `json:"total"`
}

type apiTrendPeriod struct {
	StartDate     apiTime          `json:"start_date"`
	EndDate       apiTime          `json:"end_date"`
	Total         decimal.Decimal  `json:"total"`
	TopCategories []apiTopCategory `json:"top_categories"`
}

type apiTrends struct {
	Periods []apiTrendPeriod `json:"periods"`
}

func (t apiTrends) toEntity() *entity.Trends {
	trends := &entity.Trends{Periods: make([]entity.TrendPeriod, 0, len(t.Periods))}
	for _, p := range t.Periods {
		period := entity.TrendPeriod{
			StartDate:     p.StartDate.Time,
			EndDate:       p.EndDate.Time,
			Total:         p.Total,
			TopCategories: make([]entity.TopCategory, 0, len(p.TopCategories)),
		}
		for _, top := range p.TopCategories {
			period.TopCategories = append(period.TopCategories, entity.TopCategory{Name: top.Name, Total: top.Total})
		}
		trends.Periods = append(trends.Periods, period)
	}
	return trends
}

// apiErrorResponse is the FastAPI error body. Detail is a string, or a list
// of validation errors for 422 responses.
type apiErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

type apiValidationError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// parseDetail extracts a human-readable message from an error body. It
// returns "" when the body carries none.
func parseDetail(body []byte) string {
	var resp apiErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}

	var message string
	if err := json.Unmarshal(resp.Detail, &message); err == nil {
		return message
	}

	var validation []apiValidationError
	if err := json.Unmarshal(resp.Detail, &validation); err != nil {
		return ""
	}
	parts := make([]string, 0, len(validation))
	for _, v := range validation {
		if field := fieldName(v.Loc); field != "" {
			parts = append(parts, field+": "+v.Msg)
			continue
		}
		parts = append(parts, v.Msg)
	}
	return strings.Join(parts, "; ")
}

// fieldName drops the "body"/"query" prefix of a FastAPI error location.
func fieldName(loc []any) string {
	var parts []string
	for i, part := range loc {
		if i == 0 {
			if s, ok := part.(string); ok && (s == "body" || s == "query" || s == "path") {
				continue
			}
		}
		parts = append(parts, fmt.Sprint(part))
	}
	return strings.Join(parts, ".")
}
