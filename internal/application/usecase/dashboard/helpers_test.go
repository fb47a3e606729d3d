package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

type fakeSnapshot struct {
	transactions []entity.Transaction
	categories   []entity.Category
	stats        entity.Stats
	dateRange    entity.DateRange
}

func (f *fakeSnapshot) Transactions() []entity.Transaction { return f.transactions }
func (f *fakeSnapshot) Categories() []entity.Category       { return f.categories }
func (f *fakeSnapshot) Stats() entity.Stats                 { return f.stats }
func (f *fakeSnapshot) DateRange() entity.DateRange         { return f.dateRange }

func entry(name string, total int64) entity.CategoryBreakdownEntry {
	return entity.CategoryBreakdownEntry{CategoryName: name, Total: decimal.NewFromInt(total)}
}

func month(year int, m time.Month) time.Time {
	return time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
}

func period(start time.Time, total int64, top ...entity.TopCategory) entity.TrendPeriod {
	return entity.TrendPeriod{
		StartDate:     start,
		EndDate:       start.AddDate(0, 1, -1),
		Total:         decimal.NewFromInt(total),
		TopCategories: top,
	}
}

func names(entries []entity.CategoryBreakdownEntry) []string {
	result := make([]string, len(entries))
	for i, e := range entries {
		result[i] = e.CategoryName
	}
	return result
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
