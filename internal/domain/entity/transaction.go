// Package entity defines the core business entities for the domain layer.
package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// DayLayout is the ISO calendar-day layout used for grouping and wire dates.
const DayLayout = "2006-01-02"

// TransactionSourceManual marks transactions entered by hand.
const TransactionSourceManual = "manual"

// Transaction represents a financial transaction as served by the finance API.
type Transaction struct {
	ID                  int64
	Date                time.Time
	Amount              decimal.Decimal // Negative for expenses, positive for income
	Description         string
	CategoryID          *int64 // nil means Uncategorized
	Category            *Category
	IsExpense           bool // Always equal to Amount < 0
	Source              string
	OriginalDescription string
	ImportID            *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Normalize derives IsExpense from the sign of Amount.
func (t *Transaction) Normalize() {
	t.IsExpense = t.Amount.IsNegative()
}

// Validate checks the sign and description invariants.
func (t *Transaction) Validate() error {
	if t.IsExpense != t.Amount.IsNegative() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeSignMismatch,
			"is_expense does not agree with the sign of amount",
			domainerror.ErrSignMismatch,
		)
	}
	if strings.TrimSpace(t.Description) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}
	return nil
}

// DayKey returns the ISO calendar day of the transaction.
func (t *Transaction) DayKey() string {
	return t.Date.Format(DayLayout)
}

// Clone returns a copy that shares no pointers with t.
func (t Transaction) Clone() Transaction {
	c := t
	if t.CategoryID != nil {
		id := *t.CategoryID
		c.CategoryID = &id
	}
	if t.Category != nil {
		category := *t.Category
		c.Category = &category
	}
	if t.ImportID != nil {
		importID := *t.ImportID
		c.ImportID = &importID
	}
	return c
}

// IsUncategorized reports whether the transaction has no category.
func (t *Transaction) IsUncategorized() bool {
	return t.CategoryID == nil
}

// TransactionInput holds the writable fields of a transaction.
type TransactionInput struct {
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	CategoryID  *int64
	Source      string
}

// IsExpense is derived from the sign of the amount.
func (in TransactionInput) IsExpense() bool {
	return in.Amount.IsNegative()
}

// Validate checks the fields required before the input is sent to the API.
func (in TransactionInput) Validate() error {
	if in.Date.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionDate,
			"date is required",
			domainerror.ErrInvalidTransactionDate,
		)
	}
	if strings.TrimSpace(in.Description) == "" {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeEmptyDescription,
			"description is required",
			domainerror.ErrEmptyDescription,
		)
	}
	if len(in.Description) > MaxDescriptionLength {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeDescriptionTooLong,
			"description must not exceed 255 characters",
			domainerror.ErrDescriptionTooLong,
		)
	}
	if in.Amount.IsZero() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTransactionAmount,
			"amount must not be zero",
			domainerror.ErrInvalidTransactionAmount,
		)
	}
	return nil
}

// MaxDescriptionLength is the maximum allowed length for transaction descriptions.
const MaxDescriptionLength = 255

// Totals holds income, expenses and balance folded over a transaction collection.
type Totals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

// ImportFile is an already-read bank statement handed to the import endpoint.
type ImportFile struct {
	Name    string
	Content []byte
}
