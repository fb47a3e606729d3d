package entity

import (
	"time"

	"github.com/google/uuid"
)

// TypeFilter restricts a transaction view to expenses or income.
type TypeFilter string

const (
	TypeFilterAll     TypeFilter = "all"
	TypeFilterExpense TypeFilter = "expense"
	TypeFilterIncome  TypeFilter = "income"
)

// IsValid reports whether the filter is one of the known values.
func (f TypeFilter) IsValid() bool {
	switch f {
	case "", TypeFilterAll, TypeFilterExpense, TypeFilterIncome:
		return true
	}
	return false
}

// FilterSpec is the combination of constraints defining the current transaction view.
// Zero-valued fields are inactive.
type FilterSpec struct {
	SearchTerm string
	CategoryID *int64
	StartDate  *time.Time
	EndDate    *time.Time
	Type       TypeFilter
}

// TransactionView is a persisted browsing position over the cached transactions.
type TransactionView struct {
	ID        uuid.UUID
	Filter    FilterSpec
	Page      int
	UpdatedAt time.Time
}
