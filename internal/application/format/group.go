package format

import (
	"sort"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// GroupByDate maps each ISO day to the transactions of that day, keeping input order.
func GroupByDate(transactions []entity.Transaction) map[string][]entity.Transaction {
	groups := make(map[string][]entity.Transaction)
	for _, txn := range transactions {
		day := txn.DayKey()
		groups[day] = append(groups[day], txn)
	}
	return groups
}

// DaysDescending returns the keys of groups, most recent day first.
func DaysDescending(groups map[string][]entity.Transaction) []string {
	days := make([]string, 0, len(groups))
	for day := range groups {
		days = append(days, day)
	}
	// ISO days sort lexically.
	sort.Sort(sort.Reverse(sort.StringSlice(days)))
	return days
}
