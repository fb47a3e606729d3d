package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

const (
	// DefaultTopCategories is how many categories the analysis ranks.
	DefaultTopCategories = 5
	// DefaultMonthlyPeriods is how many recent periods get a detailed card.
	DefaultMonthlyPeriods = 3
)

// GetSpendingAnalysisInput represents the input for the spending analysis.
type GetSpendingAnalysisInput struct {
	TopN           int
	MonthlyPeriods int
}

// CategoryShare is a breakdown entry decorated for display.
type CategoryShare struct {
	CategoryID   *int64
	CategoryName string
	Total        decimal.Decimal
	Percentage   float64
	Color        string
}

// MonthlyAnalysis details one recent trend period.
type MonthlyAnalysis struct {
	StartDate     time.Time
	EndDate       time.Time
	Label         string
	Total         decimal.Decimal
	TopCategories []entity.TopCategory
}

// GetSpendingAnalysisOutput represents the output of the spending analysis.
type GetSpendingAnalysisOutput struct {
	DateRange     entity.DateRange
	TotalSpending decimal.Decimal
	Categories    []CategoryShare
	TopCategories []CategoryShare
	CategoryChart Series
	Trends        []TrendPoint
	TrendChart    Series
	Monthly       []MonthlyAnalysis
}

// GetSpendingAnalysisUseCase derives the analysis page from the cached stats.
type GetSpendingAnalysisUseCase struct {
	snapshot adapter.SnapshotReader
}

// NewGetSpendingAnalysisUseCase creates a new GetSpendingAnalysisUseCase instance.
func NewGetSpendingAnalysisUseCase(snapshot adapter.SnapshotReader) *GetSpendingAnalysisUseCase {
	return &GetSpendingAnalysisUseCase{
		snapshot: snapshot,
	}
}

// Execute computes the analysis for the current date range.
func (uc *GetSpendingAnalysisUseCase) Execute(ctx context.Context, input GetSpendingAnalysisInput) (*GetSpendingAnalysisOutput, error) {
	if input.TopN < 0 || input.MonthlyPeriods < 0 {
		return nil, domainerror.NewStatsError(
			domainerror.ErrCodeInvalidTrendsQuery,
			"top_n and monthly_periods must not be negative",
			domainerror.ErrInvalidTrendsQuery,
		)
	}
	if input.TopN == 0 {
		input.TopN = DefaultTopCategories
	}
	if input.MonthlyPeriods == 0 {
		input.MonthlyPeriods = DefaultMonthlyPeriods
	}

	stats := uc.snapshot.Stats()
	totalSpending := TotalOf(stats.ByCategory)

	sorted := SortByTotal(stats.ByCategory)
	categories := make([]CategoryShare, len(sorted))
	for i, entry := range sorted {
		name := displayName(entry)
		categories[i] = CategoryShare{
			CategoryID:   entry.CategoryID,
			CategoryName: name,
			Total:        entry.Total,
			Percentage:   PercentOfTotal(entry.Total, totalSpending),
			Color:        ColorFor(name),
		}
	}

	top := categories
	if input.TopN < len(top) {
		top = top[:input.TopN]
	}

	trends := TrendSeries(stats.Trends.Periods)

	return &GetSpendingAnalysisOutput{
		DateRange:     uc.snapshot.DateRange(),
		TotalSpending: totalSpending,
		Categories:    categories,
		TopCategories: top,
		CategoryChart: CategorySeries(stats.ByCategory),
		Trends:        trends,
		TrendChart:    TrendChart(trends),
		Monthly:       monthlyAnalysis(stats.Trends.Periods, input.MonthlyPeriods),
	}, nil
}

// monthlyAnalysis takes the most recent periods in API order.
func monthlyAnalysis(periods []entity.TrendPeriod, limit int) []MonthlyAnalysis {
	if limit > len(periods) {
		limit = len(periods)
	}
	result := make([]MonthlyAnalysis, 0, limit)
	for _, period := range periods[:limit] {
		result = append(result, MonthlyAnalysis{
			StartDate:     period.StartDate,
			EndDate:       period.EndDate,
			Label:         period.StartDate.Format("January 2006"),
			Total:         period.Total,
			TopCategories: period.TopCategories,
		})
	}
	return result
}
