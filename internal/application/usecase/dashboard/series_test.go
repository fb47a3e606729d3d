package dashboard

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

func TestTopCategories(t *testing.T) {
	breakdown := []entity.CategoryBreakdownEntry{entry("A", 100), entry("B", 300), entry("C", 200)}

	t.Run("returns the largest n in descending order", func(t *testing.T) {
		got := TopCategories(breakdown, 2)
		if !equalStrings(names(got), []string{"B", "C"}) {
			t.Errorf("expected [B C], got %v", names(got))
		}
		if !got[0].Total.Equal(decimal.NewFromInt(300)) || !got[1].Total.Equal(decimal.NewFromInt(200)) {
			t.Errorf("unexpected totals %s, %s", got[0].Total, got[1].Total)
		}
	})

	t.Run("does not reorder the input", func(t *testing.T) {
		_ = TopCategories(breakdown, 3)
		if !equalStrings(names(breakdown), []string{"A", "B", "C"}) {
			t.Errorf("input was mutated: %v", names(breakdown))
		}
	})

	t.Run("n larger than input returns everything", func(t *testing.T) {
		if got := TopCategories(breakdown, 10); len(got) != 3 {
			t.Errorf("expected 3 entries, got %d", len(got))
		}
	})

	t.Run("empty input returns empty", func(t *testing.T) {
		got := TopCategories(nil, 5)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %v", got)
		}
	})
}

func TestCategorySeries(t *testing.T) {
	t.Run("ties keep their delivered order", func(t *testing.T) {
		series := CategorySeries([]entity.CategoryBreakdownEntry{
			entry("Travel", 50),
			entry("Shopping", 80),
			entry("Housing", 50),
			entry("Education", 50),
		})

		expected := []string{"Shopping", "Travel", "Housing", "Education"}
		if !equalStrings(series.Labels, expected) {
			t.Errorf("expected %v, got %v", expected, series.Labels)
		}
	})

	t.Run("colors follow labels", func(t *testing.T) {
		series := CategorySeries([]entity.CategoryBreakdownEntry{entry("Food & Dining", 10), entry("My Custom", 5)})
		if series.Colors[0] != "#FF7F50" {
			t.Errorf("expected #FF7F50, got %s", series.Colors[0])
		}
		if series.Colors[1] != FallbackColor {
			t.Errorf("expected fallback color, got %s", series.Colors[1])
		}
	})

	t.Run("missing name is shown as uncategorized", func(t *testing.T) {
		series := CategorySeries([]entity.CategoryBreakdownEntry{entry("", 10)})
		if series.Labels[0] != entity.UncategorizedName {
			t.Errorf("expected %s, got %s", entity.UncategorizedName, series.Labels[0])
		}
	})
}

func TestPercentOfTotal(t *testing.T) {
	tests := []struct {
		name     string
		part     decimal.Decimal
		total    decimal.Decimal
		expected float64
	}{
		{"zero total", decimal.NewFromInt(10), decimal.Zero, 0},
		{"zero part and total", decimal.Zero, decimal.Zero, 0},
		{"quarter", decimal.NewFromInt(25), decimal.NewFromInt(100), 25},
		{"rounded to two places", decimal.NewFromInt(1), decimal.NewFromInt(3), 33.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentOfTotal(tt.part, tt.total); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestTrendSeries(t *testing.T) {
	periods := []entity.TrendPeriod{
		period(month(2024, 3), 300),
		period(month(2024, 2), 200),
		period(month(2024, 1), 100),
	}

	points := TrendSeries(periods)

	t.Run("reverses into chronological order", func(t *testing.T) {
		expected := []string{"Jan 2024", "Feb 2024", "Mar 2024"}
		for i, point := range points {
			if point.Label != expected[i] {
				t.Errorf("position %d: expected %s, got %s", i, expected[i], point.Label)
			}
		}
		if !points[0].Total.Equal(decimal.NewFromInt(100)) {
			t.Errorf("expected first total 100, got %s", points[0].Total)
		}
	})

	t.Run("leaves the input in API order", func(t *testing.T) {
		if periods[0].StartDate != month(2024, 3) {
			t.Errorf("input was mutated")
		}
	})

	t.Run("chart uses the trend color", func(t *testing.T) {
		chart := TrendChart(points)
		for _, c := range chart.Colors {
			if c != TrendColor {
				t.Errorf("expected %s, got %s", TrendColor, c)
			}
		}
	})

	t.Run("empty periods", func(t *testing.T) {
		if got := TrendSeries(nil); len(got) != 0 {
			t.Errorf("expected no points, got %d", len(got))
		}
	})
}

func TestColorFor(t *testing.T) {
	if got := ColorFor("Health & Fitness"); got != "#3AE374" {
		t.Errorf("expected #3AE374, got %s", got)
	}
	if got := ColorFor("health & fitness"); got != FallbackColor {
		t.Errorf("lookup is case-sensitive, expected fallback, got %s", got)
	}
}
