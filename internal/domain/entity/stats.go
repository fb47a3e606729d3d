package entity

import (
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// DefaultRangeDays is the length of the date range used before the user picks one.
const DefaultRangeDays = 30

// DateRange bounds the server-side stats queries. Both ends are inclusive and optional.
type DateRange struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// NewDateRange builds a DateRange and enforces StartDate <= EndDate.
func NewDateRange(start, end *time.Time) (DateRange, error) {
	r := DateRange{StartDate: start, EndDate: end}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// DefaultDateRange returns the last days ending at now.
func DefaultDateRange(now time.Time, days int) DateRange {
	start := now.AddDate(0, 0, -days)
	end := now
	return DateRange{StartDate: &start, EndDate: &end}
}

// Validate checks that the start does not come after the end.
func (r DateRange) Validate() error {
	if r.StartDate != nil && r.EndDate != nil && r.StartDate.After(*r.EndDate) {
		return domainerror.NewStatsError(
			domainerror.ErrCodeInvalidDateRange,
			"start_date must not be after end_date",
			domainerror.ErrInvalidDateRange,
		)
	}
	return nil
}

// Equal reports whether both ranges cover the same calendar days.
func (r DateRange) Equal(other DateRange) bool {
	return sameDay(r.StartDate, other.StartDate) && sameDay(r.EndDate, other.EndDate)
}

func sameDay(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Format(DayLayout) == b.Format(DayLayout)
}

// CategoryBreakdownEntry is the remote aggregate of expenses for one category.
type CategoryBreakdownEntry struct {
	CategoryID   *int64
	CategoryName string
	Total        decimal.Decimal // Sum of absolute expense amounts
}

// TopCategory is one of the leading categories inside a trend period.
type TopCategory struct {
	Name  string
	Total decimal.Decimal
}

// TrendPeriod is one time bucket of spending.
type TrendPeriod struct {
	StartDate     time.Time
	EndDate       time.Time
	Total         decimal.Decimal
	TopCategories []TopCategory
}

// Trends holds periods ordered most recent first, as delivered by the API.
type Trends struct {
	Periods []TrendPeriod
}

// TrendsQuery shapes the trends request.
type TrendsQuery struct {
	NumPeriods int
	PeriodDays int
}

// Stats combines the breakdown and trends for the current date range.
type Stats struct {
	ByCategory []CategoryBreakdownEntry
	Trends     Trends
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	c := EmptyStats()
	for _, e := range s.ByCategory {
		if e.CategoryID != nil {
			id := *e.CategoryID
			e.CategoryID = &id
		}
		c.ByCategory = append(c.ByCategory, e)
	}
	for _, p := range s.Trends.Periods {
		p.TopCategories = append([]TopCategory(nil), p.TopCategories...)
		c.Trends.Periods = append(c.Trends.Periods, p)
	}
	return c
}

// Clone returns a copy of r that shares no pointers with it.
func (r DateRange) Clone() DateRange {
	c := DateRange{}
	if r.StartDate != nil {
		start := *r.StartDate
		c.StartDate = &start
	}
	if r.EndDate != nil {
		end := *r.EndDate
		c.EndDate = &end
	}
	return c
}

// EmptyStats returns the well-formed empty shape used after a failed stats load.
func EmptyStats() Stats {
	return Stats{
		ByCategory: []CategoryBreakdownEntry{},
		Trends:     Trends{Periods: []TrendPeriod{}},
	}
}
