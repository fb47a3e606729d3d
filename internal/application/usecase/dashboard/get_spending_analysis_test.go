package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

func TestGetSpendingAnalysisUseCase_Execute(t *testing.T) {
	snapshot := &fakeSnapshot{
		stats: entity.Stats{
			ByCategory: []entity.CategoryBreakdownEntry{
				entry("Shopping", 100),
				entry("Housing", 600),
				entry("Travel", 50),
				entry("Education", 50),
				entry("Food & Dining", 150),
				entry("Transfer", 25),
				entry("Entertainment", 25),
			},
			Trends: entity.Trends{Periods: []entity.TrendPeriod{
				period(month(2024, 4), 400, entity.TopCategory{Name: "Housing", Total: decimal.NewFromInt(300)}),
				period(month(2024, 3), 300),
				period(month(2024, 2), 200),
				period(month(2024, 1), 100),
			}},
		},
	}
	uc := NewGetSpendingAnalysisUseCase(snapshot)

	t.Run("ranks and decorates categories", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetSpendingAnalysisInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !out.TotalSpending.Equal(decimal.NewFromInt(1000)) {
			t.Errorf("expected total spending 1000, got %s", out.TotalSpending)
		}
		if len(out.Categories) != 7 {
			t.Fatalf("expected 7 categories, got %d", len(out.Categories))
		}
		if len(out.TopCategories) != DefaultTopCategories {
			t.Fatalf("expected %d top categories, got %d", DefaultTopCategories, len(out.TopCategories))
		}

		top := out.TopCategories[0]
		if top.CategoryName != "Housing" || top.Percentage != 60 || top.Color != "#6A0572" {
			t.Errorf("unexpected top category %+v", top)
		}
		if out.TopCategories[3].CategoryName != "Travel" || out.TopCategories[4].CategoryName != "Education" {
			t.Errorf("expected stable tie order Travel, Education; got %s, %s",
				out.TopCategories[3].CategoryName, out.TopCategories[4].CategoryName)
		}
	})

	t.Run("trends are chronological and monthly analysis is most recent first", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetSpendingAnalysisInput{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if out.Trends[0].Label != "Jan 2024" || out.Trends[3].Label != "Apr 2024" {
			t.Errorf("unexpected trend order %s .. %s", out.Trends[0].Label, out.Trends[3].Label)
		}
		if len(out.Monthly) != DefaultMonthlyPeriods {
			t.Fatalf("expected %d monthly cards, got %d", DefaultMonthlyPeriods, len(out.Monthly))
		}
		if out.Monthly[0].Label != "April 2024" {
			t.Errorf("expected April 2024, got %s", out.Monthly[0].Label)
		}
		if len(out.Monthly[0].TopCategories) != 1 {
			t.Errorf("expected top categories to be carried over")
		}
	})

	t.Run("custom limits", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), GetSpendingAnalysisInput{TopN: 2, MonthlyPeriods: 10})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.TopCategories) != 2 {
			t.Errorf("expected 2 top categories, got %d", len(out.TopCategories))
		}
		if len(out.Monthly) != 4 {
			t.Errorf("expected monthly analysis capped at 4 periods, got %d", len(out.Monthly))
		}
	})

	t.Run("negative limits are rejected", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), GetSpendingAnalysisInput{TopN: -1})
		if !errors.Is(err, domainerror.ErrInvalidTrendsQuery) {
			t.Errorf("expected ErrInvalidTrendsQuery, got %v", err)
		}
	})
}

func TestGetSpendingAnalysisUseCase_EmptyStats(t *testing.T) {
	uc := NewGetSpendingAnalysisUseCase(&fakeSnapshot{stats: entity.EmptyStats()})

	out, err := uc.Execute(context.Background(), GetSpendingAnalysisInput{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.TotalSpending.IsZero() {
		t.Errorf("expected zero spending, got %s", out.TotalSpending)
	}
	if len(out.Categories) != 0 || len(out.TopCategories) != 0 || len(out.Trends) != 0 || len(out.Monthly) != 0 {
		t.Errorf("expected empty analysis, got %+v", out)
	}
}
