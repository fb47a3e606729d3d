package transaction

import (
	"testing"

	"github.com/finance-tracker/client/internal/domain/entity"
)

func TestTotalPages(t *testing.T) {
	tests := []struct {
		count, size, expected int
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{45, 20, 3},
		{45, 0, 0},
	}

	for _, tt := range tests {
		if got := TotalPages(tt.count, tt.size); got != tt.expected {
			t.Errorf("TotalPages(%d, %d): expected %d, got %d", tt.count, tt.size, tt.expected, got)
		}
	}
}

func TestPaginate(t *testing.T) {
	items := sequence(45)

	t.Run("third page holds the remainder", func(t *testing.T) {
		page := Paginate(items, 3, PageSize)
		if len(page) != 5 {
			t.Fatalf("expected 5 items, got %d", len(page))
		}
		if page[0].ID != 41 || page[4].ID != 45 {
			t.Errorf("expected ids 41..45, got %v", ids(page))
		}
	})

	t.Run("first page is full", func(t *testing.T) {
		if got := len(Paginate(items, 1, PageSize)); got != PageSize {
			t.Errorf("expected %d items, got %d", PageSize, got)
		}
	})

	t.Run("out of range pages are empty", func(t *testing.T) {
		for _, p := range []int{0, -1, 4, 100} {
			if got := len(Paginate(items, p, PageSize)); got != 0 {
				t.Errorf("page %d: expected 0 items, got %d", p, got)
			}
		}
	})

	t.Run("empty collection", func(t *testing.T) {
		page := Paginate(nil, 1, PageSize)
		if page == nil || len(page) != 0 {
			t.Errorf("expected empty non-nil page, got %v", page)
		}
	})
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		page, total, expected int
	}{
		{0, 3, 1},
		{2, 3, 2},
		{9, 3, 3},
		{5, 0, 1},
	}

	for _, tt := range tests {
		if got := ClampPage(tt.page, tt.total); got != tt.expected {
			t.Errorf("ClampPage(%d, %d): expected %d, got %d", tt.page, tt.total, tt.expected, got)
		}
	}
}

func TestGroupByDay(t *testing.T) {
	items := []entity.Transaction{
		txn(1, 5, -10, "a", nil),
		txn(2, 7, -20, "b", nil),
		txn(3, 5, 30, "c", nil),
		txn(4, 6, -40, "d", nil),
		txn(5, 7, -50, "e", nil),
	}

	groups := GroupByDay(items)

	expectedDays := []string{"2024-01-07", "2024-01-06", "2024-01-05"}
	if len(groups) != len(expectedDays) {
		t.Fatalf("expected %d groups, got %d", len(expectedDays), len(groups))
	}

	var flattened []int64
	for i, g := range groups {
		if g.Day != expectedDays[i] {
			t.Errorf("group %d: expected day %s, got %s", i, expectedDays[i], g.Day)
		}
		flattened = append(flattened, ids(g.Transactions)...)
	}

	// Every input item once, intra-day order preserved.
	expected := []int64{2, 5, 4, 1, 3}
	if !equalIDs(flattened, expected) {
		t.Errorf("expected %v, got %v", expected, flattened)
	}

	if !groups[2].DailyTotal.Equal(groups[2].Transactions[0].Amount.Add(groups[2].Transactions[1].Amount)) {
		t.Errorf("expected daily total 20, got %s", groups[2].DailyTotal)
	}
}

func TestGroupByDay_Empty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Errorf("expected no groups, got %d", len(groups))
	}
}
