// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/application/usecase/transaction"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// TransactionRequest represents the request body for creating or replacing a transaction.
type TransactionRequest struct {
	Date        string          `json:"date" binding:"required,iso_date"`
	Amount      decimal.Decimal `json:"amount" binding:"nonzero_amount"`
	Description string          `json:"description" binding:"required,max=255"`
	CategoryID  *int64          `json:"category_id,omitempty" binding:"omitempty,gt=0"`
}

// ParsedDate returns the request date. It assumes binding already validated it.
func (r TransactionRequest) ParsedDate() time.Time {
	date, _ := time.Parse(entity.DayLayout, r.Date)
	return date
}

// ListTransactionsQuery represents the query string of GET /transactions.
type ListTransactionsQuery struct {
	Search     string `form:"search"`
	CategoryID *int64 `form:"category_id" binding:"omitempty,gt=0"`
	StartDate  string `form:"start_date" binding:"omitempty,iso_date"`
	EndDate    string `form:"end_date" binding:"omitempty,iso_date"`
	Type       string `form:"type" binding:"omitempty,type_filter"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// FilterSpec converts the query into the pipeline filter.
func (q ListTransactionsQuery) FilterSpec() entity.FilterSpec {
	return entity.FilterSpec{
		SearchTerm: q.Search,
		CategoryID: q.CategoryID,
		StartDate:  parseDay(q.StartDate),
		EndDate:    parseDay(q.EndDate),
		Type:       entity.TypeFilter(q.Type),
	}
}

func parseDay(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse(entity.DayLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

func formatDay(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(entity.DayLayout)
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID                  int64     `json:"id"`
	Date                string    `json:"date"`
	FormattedDate       string    `json:"formatted_date"`
	Amount              string    `json:"amount"`
	FormattedAmount     string    `json:"formatted_amount"`
	Description         string    `json:"description"`
	ShortDescription    string    `json:"short_description"` // Truncated for list cards
	OriginalDescription string    `json:"original_description,omitempty"`
	IsExpense           bool      `json:"is_expense"`
	CategoryID          *int64    `json:"category_id"`
	CategoryName        string    `json:"category_name"`
	Source              string    `json:"source"`
	ImportID            *string   `json:"import_id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
}

// TotalsResponse represents aggregated totals in API responses.
type TotalsResponse struct {
	Income            string `json:"income"`
	Expenses          string `json:"expenses"`
	Balance           string `json:"balance"`
	FormattedIncome   string `json:"formatted_income"`
	FormattedExpenses string `json:"formatted_expenses"`
	FormattedBalance  string `json:"formatted_balance"`
}

// DayGroupResponse represents the transactions of one calendar day.
type DayGroupResponse struct {
	Day                 string                `json:"day"`
	Label               string                `json:"label"`
	DailyTotal          string                `json:"daily_total"`
	FormattedDailyTotal string                `json:"formatted_daily_total"`
	Transactions        []TransactionResponse `json:"transactions"`
}

// PaginationResponse represents pagination information in API responses.
type PaginationResponse struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TransactionListResponse represents the response for listing transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Groups       []DayGroupResponse    `json:"groups"`
	Pagination   PaginationResponse    `json:"pagination"`
	Totals       TotalsResponse        `json:"totals"`
}

// ImportResponse represents the result of a statement import.
type ImportResponse struct {
	ImportedCount int                   `json:"imported_count"`
	Transactions  []TransactionResponse `json:"transactions"`
	Totals        TotalsResponse        `json:"totals"`
}

// ToTransactionResponse converts a domain Transaction to a TransactionResponse DTO.
func ToTransactionResponse(txn entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:                  txn.ID,
		Date:                txn.DayKey(),
		FormattedDate:       format.Date(txn.Date, format.DateMedium),
		Amount:              txn.Amount.StringFixed(2),
		FormattedAmount:     format.Currency(txn.Amount),
		Description:         txn.Description,
		ShortDescription:    format.Truncate(txn.Description, format.DefaultTruncateLength),
		OriginalDescription: txn.OriginalDescription,
		IsExpense:           txn.IsExpense,
		CategoryID:          txn.CategoryID,
		CategoryName:        entity.UncategorizedName,
		Source:              txn.Source,
		ImportID:            txn.ImportID,
		CreatedAt:           txn.CreatedAt,
	}
	if txn.Category != nil {
		response.CategoryName = txn.Category.Name
	}
	return response
}

// ToTransactionResponses converts a slice of transactions, never returning nil.
func ToTransactionResponses(txns []entity.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(txn)
	}
	return responses
}

// ToTotalsResponse converts domain Totals.
func ToTotalsResponse(totals entity.Totals) TotalsResponse {
	return TotalsResponse{
		Income:            totals.Income.StringFixed(2),
		Expenses:          totals.Expenses.StringFixed(2),
		Balance:           totals.Balance.StringFixed(2),
		FormattedIncome:   format.Currency(totals.Income),
		FormattedExpenses: format.Currency(totals.Expenses),
		FormattedBalance:  format.Currency(totals.Balance),
	}
}

// ToTransactionListResponse converts a ListTransactionsOutput to TransactionListResponse.
func ToTransactionListResponse(output *transaction.ListTransactionsOutput) TransactionListResponse {
	groups := make([]DayGroupResponse, len(output.Groups))
	for i, group := range output.Groups {
		groups[i] = DayGroupResponse{
			Day:                 group.Day,
			Label:               format.Date(group.Date, format.DateLong),
			DailyTotal:          group.DailyTotal.StringFixed(2),
			FormattedDailyTotal: format.Currency(group.DailyTotal),
			Transactions:        ToTransactionResponses(group.Transactions),
		}
	}

	return TransactionListResponse{
		Transactions: ToTransactionResponses(output.Transactions),
		Groups:       groups,
		Pagination: PaginationResponse{
			Page:       output.Pagination.Page,
			PageSize:   output.Pagination.PageSize,
			Total:      output.Pagination.Total,
			TotalPages: output.Pagination.TotalPages,
		},
		Totals: ToTotalsResponse(output.Totals),
	}
}

// ToImportResponse converts an ImportTransactionsOutput.
func ToImportResponse(output *transaction.ImportTransactionsOutput) ImportResponse {
	return ImportResponse{
		ImportedCount: len(output.Imported),
		Transactions:  ToTransactionResponses(output.Imported),
		Totals:        ToTotalsResponse(output.Totals),
	}
}
