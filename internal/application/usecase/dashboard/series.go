// Package dashboard contains the aggregation engine and the dashboard use cases.
// Breakdowns and trends come from the finance API; this package only orders,
// truncates and decorates them for charts.
package dashboard

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Series is chart-ready data with one label, value and color per point.
type Series struct {
	Labels []string
	Values []decimal.Decimal
	Colors []string
}

// TrendPoint is one chronological point of the spending trend.
type TrendPoint struct {
	StartDate time.Time
	EndDate   time.Time
	Label     string
	Total     decimal.Decimal
}

// SortByTotal returns a copy of breakdown ordered by descending total.
// The sort is stable so equal totals keep their delivered order.
func SortByTotal(breakdown []entity.CategoryBreakdownEntry) []entity.CategoryBreakdownEntry {
	sorted := slices.Clone(breakdown)
	if sorted == nil {
		sorted = []entity.CategoryBreakdownEntry{}
	}
	slices.SortStableFunc(sorted, func(a, b entity.CategoryBreakdownEntry) int {
		return b.Total.Cmp(a.Total)
	})
	return sorted
}

// CategorySeries builds the category chart, largest total first.
func CategorySeries(breakdown []entity.CategoryBreakdownEntry) Series {
	sorted := SortByTotal(breakdown)
	series := Series{
		Labels: make([]string, len(sorted)),
		Values: make([]decimal.Decimal, len(sorted)),
		Colors: make([]string, len(sorted)),
	}
	for i, entry := range sorted {
		name := displayName(entry)
		series.Labels[i] = name
		series.Values[i] = entry.Total
		series.Colors[i] = ColorFor(name)
	}
	return series
}

// TopCategories returns the n largest entries in SortByTotal order.
func TopCategories(breakdown []entity.CategoryBreakdownEntry, n int) []entity.CategoryBreakdownEntry {
	sorted := SortByTotal(breakdown)
	if n <= 0 {
		return []entity.CategoryBreakdownEntry{}
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

// TotalOf sums the breakdown totals.
func TotalOf(breakdown []entity.CategoryBreakdownEntry) decimal.Decimal {
	total := decimal.Zero
	for _, entry := range breakdown {
		total = total.Add(entry.Total)
	}
	return total
}

// PercentOfTotal returns part as a percentage of total rounded to two places.
// A zero total yields 0.
func PercentOfTotal(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	pct, _ := part.Mul(hundred).Div(total).Round(2).Float64()
	return pct
}

// TrendSeries reverses the most-recent-first periods into chronological points.
// Apply it exactly once: a second pass restores the API order.
func TrendSeries(periods []entity.TrendPeriod) []TrendPoint {
	points := make([]TrendPoint, len(periods))
	for i, period := range periods {
		points[len(periods)-1-i] = TrendPoint{
			StartDate: period.StartDate,
			EndDate:   period.EndDate,
			Label:     format.Date(period.StartDate, format.DateMonthYear),
			Total:     period.Total,
		}
	}
	return points
}

// TrendChart turns chronological points into a single-color series.
func TrendChart(points []TrendPoint) Series {
	series := Series{
		Labels: make([]string, len(points)),
		Values: make([]decimal.Decimal, len(points)),
		Colors: make([]string, len(points)),
	}
	for i, point := range points {
		series.Labels[i] = point.Label
		series.Values[i] = point.Total
		series.Colors[i] = TrendColor
	}
	return series
}

func displayName(entry entity.CategoryBreakdownEntry) string {
	if entry.CategoryName == "" {
		return entity.UncategorizedName
	}
	return entry.CategoryName
}
