package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/format"
	"github.com/finance-tracker/client/internal/application/usecase/dashboard"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// DateRangeRequest represents the body of PUT /date-range. Omitted bounds are open.
type DateRangeRequest struct {
	StartDate string `json:"start_date" binding:"omitempty,iso_date"`
	EndDate   string `json:"end_date" binding:"omitempty,iso_date"`
}

// DateRange converts the request into a domain range without validating order.
func (r DateRangeRequest) DateRange() entity.DateRange {
	return entity.DateRange{StartDate: parseDay(r.StartDate), EndDate: parseDay(r.EndDate)}
}

// DateRangeResponse represents the stats date range.
type DateRangeResponse struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// ToDateRangeResponse converts a domain DateRange.
func ToDateRangeResponse(r entity.DateRange) DateRangeResponse {
	return DateRangeResponse{StartDate: formatDay(r.StartDate), EndDate: formatDay(r.EndDate)}
}

// CategoryShareResponse represents one category's part of total spending.
type CategoryShareResponse struct {
	CategoryID     *int64  `json:"category_id"`
	CategoryName   string  `json:"category_name"`
	Total          string  `json:"total"`
	FormattedTotal string  `json:"formatted_total"`
	Percentage     float64 `json:"percentage"`
	Color          string  `json:"color"`
}

// SeriesResponse represents chart-ready labels and values.
type SeriesResponse struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors,omitempty"`
}

// TrendPointResponse represents one spending period.
type TrendPointResponse struct {
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
	Label          string `json:"label"`
	Total          string `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

// TopCategoryResponse represents a leading category inside a period.
type TopCategoryResponse struct {
	Name           string `json:"name"`
	Total          string `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

// MonthlyAnalysisResponse represents the breakdown of one recent period.
type MonthlyAnalysisResponse struct {
	StartDate      string                `json:"start_date"`
	EndDate        string                `json:"end_date"`
	Label          string                `json:"label"`
	Total          string                `json:"total"`
	FormattedTotal string                `json:"formatted_total"`
	TopCategories  []TopCategoryResponse `json:"top_categories"`
}

// AnalysisResponse represents the response of GET /analysis.
type AnalysisResponse struct {
	DateRange              DateRangeResponse         `json:"date_range"`
	TotalSpending          string                    `json:"total_spending"`
	FormattedTotalSpending string                    `json:"formatted_total_spending"`
	Categories             []CategoryShareResponse   `json:"categories"`
	TopCategories          []CategoryShareResponse   `json:"top_categories"`
	CategoryChart          SeriesResponse            `json:"category_chart"`
	Trends                 []TrendPointResponse      `json:"trends"`
	TrendChart             SeriesResponse            `json:"trend_chart"`
	Monthly                []MonthlyAnalysisResponse `json:"monthly"`
}

// SummaryCategoryResponse represents a top spending category on the dashboard.
type SummaryCategoryResponse struct {
	CategoryID     *int64 `json:"category_id"`
	CategoryName   string `json:"category_name"`
	Total          string `json:"total"`
	FormattedTotal string `json:"formatted_total"`
}

// SummaryResponse represents the response of GET /dashboard.
type SummaryResponse struct {
	Totals             TotalsResponse            `json:"totals"`
	TransactionCount   int                       `json:"transaction_count"`
	CategoryCount      int                       `json:"category_count"`
	RecentTransactions []TransactionResponse     `json:"recent_transactions"`
	TopCategories      []SummaryCategoryResponse `json:"top_categories"`
}

func toShares(shares []dashboard.CategoryShare) []CategoryShareResponse {
	responses := make([]CategoryShareResponse, len(shares))
	for i, s := range shares {
		responses[i] = CategoryShareResponse{
			CategoryID:     s.CategoryID,
			CategoryName:   s.CategoryName,
			Total:          s.Total.StringFixed(2),
			FormattedTotal: format.Currency(s.Total),
			Percentage:     s.Percentage,
			Color:          s.Color,
		}
	}
	return responses
}

func toSeries(series dashboard.Series) SeriesResponse {
	values := make([]float64, len(series.Values))
	for i, v := range series.Values {
		values[i] = v.InexactFloat64()
	}
	return SeriesResponse{
		Labels: append([]string{}, series.Labels...),
		Values: values,
		Colors: series.Colors,
	}
}

func toTopCategories(top []entity.TopCategory) []TopCategoryResponse {
	responses := make([]TopCategoryResponse, len(top))
	for i, c := range top {
		responses[i] = TopCategoryResponse{
			Name:           c.Name,
			Total:          c.Total.StringFixed(2),
			FormattedTotal: format.Currency(c.Total),
		}
	}
	return responses
}

func money(d decimal.Decimal) (string, string) {
	return d.StringFixed(2), format.Currency(d)
}

// ToAnalysisResponse converts a GetSpendingAnalysisOutput.
func ToAnalysisResponse(output *dashboard.GetSpendingAnalysisOutput) AnalysisResponse {
	trends := make([]TrendPointResponse, len(output.Trends))
	for i, p := range output.Trends {
		total, formatted := money(p.Total)
		trends[i] = TrendPointResponse{
			StartDate:      p.StartDate.Format(entity.DayLayout),
			EndDate:        p.EndDate.Format(entity.DayLayout),
			Label:          p.Label,
			Total:          total,
			FormattedTotal: formatted,
		}
	}

	monthly := make([]MonthlyAnalysisResponse, len(output.Monthly))
	for i, m := range output.Monthly {
		total, formatted := money(m.Total)
		monthly[i] = MonthlyAnalysisResponse{
			StartDate:      m.StartDate.Format(entity.DayLayout),
			EndDate:        m.EndDate.Format(entity.DayLayout),
			Label:          m.Label,
			Total:          total,
			FormattedTotal: formatted,
			TopCategories:  toTopCategories(m.TopCategories),
		}
	}

	total, formatted := money(output.TotalSpending)
	return AnalysisResponse{
		DateRange:              ToDateRangeResponse(output.DateRange),
		TotalSpending:          total,
		FormattedTotalSpending: formatted,
		Categories:             toShares(output.Categories),
		TopCategories:          toShares(output.TopCategories),
		CategoryChart:          toSeries(output.CategoryChart),
		Trends:                 trends,
		TrendChart:             toSeries(output.TrendChart),
		Monthly:                monthly,
	}
}

// ToSummaryResponse converts a GetSummaryOutput.
func ToSummaryResponse(output *dashboard.GetSummaryOutput) SummaryResponse {
	top := make([]SummaryCategoryResponse, len(output.TopCategories))
	for i, entry := range output.TopCategories {
		total, formatted := money(entry.Total)
		top[i] = SummaryCategoryResponse{
			CategoryID:     entry.CategoryID,
			CategoryName:   entry.CategoryName,
			Total:          total,
			FormattedTotal: formatted,
		}
	}

	return SummaryResponse{
		Totals:             ToTotalsResponse(output.Totals),
		TransactionCount:   output.TransactionCount,
		CategoryCount:      output.CategoryCount,
		RecentTransactions: ToTransactionResponses(output.RecentTransactions),
		TopCategories:      top,
	}
}
