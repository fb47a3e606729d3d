package transaction

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
)

const (
	// PageSize is the number of transactions per page.
	PageSize = 20
	// MaxPageSize bounds caller-provided page sizes.
	MaxPageSize = 100
)

// TotalPages returns ceil(count / pageSize). An empty set has zero pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// Paginate returns the items of page (1-based). It does not clamp: a page
// outside [1, TotalPages] yields an empty slice.
func Paginate(items []entity.Transaction, page, pageSize int) []entity.Transaction {
	if page < 1 || pageSize <= 0 {
		return []entity.Transaction{}
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []entity.Transaction{}
	}
	end := min(start+pageSize, len(items))
	return append([]entity.Transaction(nil), items[start:end]...)
}

// ClampPage keeps page inside [1, max(totalPages, 1)].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// DayGroup holds the transactions of one calendar day.
type DayGroup struct {
	Day          string
	Date         time.Time
	Transactions []entity.Transaction
	DailyTotal   decimal.Decimal
}

// GroupByDay groups items by day, most recent day first, keeping the
// delivered order inside each day.
func GroupByDay(items []entity.Transaction) []DayGroup {
	groups := format.GroupByDate(items)
	days := format.DaysDescending(groups)

	result := make([]DayGroup, 0, len(days))
	for _, day := range days {
		txns := groups[day]
		total := decimal.Zero
		for _, txn := range txns {
			total = total.Add(txn.Amount)
		}
		date, _ := time.Parse(entity.DayLayout, day)
		result = append(result, DayGroup{
			Day:          day,
			Date:         date,
			Transactions: txns,
			DailyTotal:   total,
		})
	}
	return result
}
