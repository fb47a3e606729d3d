// Package transaction contains the transaction view pipeline and its use cases.
package transaction

import (
	"slices"
	"strings"
	"time"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// Predicate reports whether a transaction belongs to the view.
type Predicate func(entity.Transaction) bool

// Predicates returns one predicate per active field of spec.
func Predicates(spec entity.FilterSpec) []Predicate {
	var predicates []Predicate
	if term := strings.TrimSpace(spec.SearchTerm); term != "" {
		predicates = append(predicates, MatchSearch(term))
	}
	if spec.CategoryID != nil {
		predicates = append(predicates, MatchCategory(*spec.CategoryID))
	}
	if spec.StartDate != nil {
		predicates = append(predicates, OnOrAfter(*spec.StartDate))
	}
	if spec.EndDate != nil {
		predicates = append(predicates, OnOrBefore(*spec.EndDate))
	}
	if spec.Type == entity.TypeFilterExpense || spec.Type == entity.TypeFilterIncome {
		predicates = append(predicates, MatchType(spec.Type))
	}
	return predicates
}

// MatchSearch matches descriptions containing term, ignoring case.
func MatchSearch(term string) Predicate {
	needle := strings.ToLower(term)
	return func(txn entity.Transaction) bool {
		return strings.Contains(strings.ToLower(txn.Description), needle)
	}
}

// MatchCategory matches transactions of exactly one category.
func MatchCategory(categoryID int64) Predicate {
	return func(txn entity.Transaction) bool {
		return txn.CategoryID != nil && *txn.CategoryID == categoryID
	}
}

// OnOrAfter matches transactions dated on or after the calendar day of start.
func OnOrAfter(start time.Time) Predicate {
	day := start.Format(entity.DayLayout)
	return func(txn entity.Transaction) bool {
		return txn.DayKey() >= day
	}
}

// OnOrBefore matches transactions dated on or before the calendar day of end.
func OnOrBefore(end time.Time) Predicate {
	day := end.Format(entity.DayLayout)
	return func(txn entity.Transaction) bool {
		return txn.DayKey() <= day
	}
}

// MatchType matches expenses or income through IsExpense.
func MatchType(filter entity.TypeFilter) Predicate {
	wantExpense := filter == entity.TypeFilterExpense
	return func(txn entity.Transaction) bool {
		return txn.IsExpense == wantExpense
	}
}

// ValidateFilter rejects unknown type filters.
func ValidateFilter(spec entity.FilterSpec) error {
	if !spec.Type.IsValid() {
		return domainerror.NewTransactionError(
			domainerror.ErrCodeInvalidTypeFilter,
			"type must be one of: all, expense, income",
			domainerror.ErrInvalidTypeFilter,
		)
	}
	return nil
}

// Apply runs every active predicate of spec as its own pass over a copy of
// transactions. The input slice is never modified.
func Apply(transactions []entity.Transaction, spec entity.FilterSpec) []entity.Transaction {
	result := slices.Clone(transactions)
	for _, keep := range Predicates(spec) {
		result = filterPass(result, keep)
	}
	if result == nil {
		result = []entity.Transaction{}
	}
	return result
}

func filterPass(transactions []entity.Transaction, keep Predicate) []entity.Transaction {
	kept := make([]entity.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if keep(txn) {
			kept = append(kept, txn)
		}
	}
	return kept
}

// SameFilter reports whether two specs select the same view.
func SameFilter(a, b entity.FilterSpec) bool {
	return strings.TrimSpace(a.SearchTerm) == strings.TrimSpace(b.SearchTerm) &&
		sameID(a.CategoryID, b.CategoryID) &&
		sameDay(a.StartDate, b.StartDate) &&
		sameDay(a.EndDate, b.EndDate) &&
		normalizeType(a.Type) == normalizeType(b.Type)
}

func sameID(a, b *int64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(entity.DayLayout) == b.Format(entity.DayLayout)
}

func normalizeType(f entity.TypeFilter) entity.TypeFilter {
	if f == "" {
		return entity.TypeFilterAll
	}
	return f
}
