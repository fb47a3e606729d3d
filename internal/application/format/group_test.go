package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
)

func txnOn(id int64, day string, amount float64) entity.Transaction {
	date, _ := time.Parse(entity.DayLayout, day)
	txn := entity.Transaction{
		ID:          id,
		Date:        date,
		Amount:      decimal.NewFromFloat(amount),
		Description: "txn",
	}
	txn.Normalize()
	return txn
}

func TestGroupByDate(t *testing.T) {
	input := []entity.Transaction{
		txnOn(1, "2024-01-05", -10),
		txnOn(2, "2024-01-03", -20),
		txnOn(3, "2024-01-05", 30),
		txnOn(4, "2024-01-04", -40),
		txnOn(5, "2024-01-05", -50),
	}

	groups := GroupByDate(input)

	t.Run("keeps insertion order within a day", func(t *testing.T) {
		day := groups["2024-01-05"]
		if len(day) != 3 {
			t.Fatalf("expected 3 transactions on 2024-01-05, got %d", len(day))
		}
		for i, want := range []int64{1, 3, 5} {
			if day[i].ID != want {
				t.Errorf("position %d: expected id %d, got %d", i, want, day[i].ID)
			}
		}
	})

	t.Run("flattening in descending day order reproduces every item once", func(t *testing.T) {
		seen := map[int64]int{}
		var order []int64
		for _, day := range DaysDescending(groups) {
			for _, txn := range groups[day] {
				seen[txn.ID]++
				order = append(order, txn.ID)
			}
		}

		if len(order) != len(input) {
			t.Fatalf("expected %d items, got %d", len(input), len(order))
		}
		for id, count := range seen {
			if count != 1 {
				t.Errorf("expected id %d once, got %d", id, count)
			}
		}

		expected := []int64{1, 3, 5, 4, 2}
		for i := range expected {
			if order[i] != expected[i] {
				t.Errorf("expected order %v, got %v", expected, order)
				break
			}
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := GroupByDate(nil); len(got) != 0 {
			t.Errorf("expected no groups, got %d", len(got))
		}
	})
}
