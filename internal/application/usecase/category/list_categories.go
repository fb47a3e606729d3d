package category

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// ListCategoriesInput represents the input for listing categories.
type ListCategoriesInput struct {
	IncludeUncategorized bool // Add a synthetic row for transactions without a category
}

// CategoryOutput represents a single category in the output.
type CategoryOutput struct {
	Category         entity.Category
	TransactionCount int
	PeriodTotal      decimal.Decimal // Expenses inside the current stats date range
}

// ListCategoriesOutput represents the output of listing categories.
type ListCategoriesOutput struct {
	Categories []CategoryOutput
}

// ListCategoriesUseCase lists cached categories with usage figures.
type ListCategoriesUseCase struct {
	snapshot adapter.SnapshotReader
}

// NewListCategoriesUseCase creates a new ListCategoriesUseCase instance.
func NewListCategoriesUseCase(snapshot adapter.SnapshotReader) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{
		snapshot: snapshot,
	}
}

// Execute performs the category listing. Defaults come first, then by name.
func (uc *ListCategoriesUseCase) Execute(ctx context.Context, input ListCategoriesInput) (*ListCategoriesOutput, error) {
	categories := uc.snapshot.Categories()
	transactions := uc.snapshot.Transactions()
	breakdown := uc.snapshot.Stats().ByCategory

	counts := make(map[int64]int, len(categories))
	uncategorized := 0
	for _, txn := range transactions {
		if txn.CategoryID == nil {
			uncategorized++
			continue
		}
		counts[*txn.CategoryID]++
	}

	totals := make(map[int64]decimal.Decimal, len(breakdown))
	uncategorizedTotal := decimal.Zero
	for _, entry := range breakdown {
		if entry.CategoryID == nil {
			uncategorizedTotal = uncategorizedTotal.Add(entry.Total)
			continue
		}
		totals[*entry.CategoryID] = totals[*entry.CategoryID].Add(entry.Total)
	}

	output := make([]CategoryOutput, 0, len(categories)+1)
	for _, c := range categories {
		output = append(output, CategoryOutput{
			Category:         c,
			TransactionCount: counts[c.ID],
			PeriodTotal:      totals[c.ID],
		})
	}

	sort.SliceStable(output, func(i, j int) bool {
		a, b := output[i].Category, output[j].Category
		if a.IsDefault != b.IsDefault {
			return a.IsDefault
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	if input.IncludeUncategorized && uncategorized > 0 {
		output = append(output, CategoryOutput{
			Category:         entity.Category{Name: entity.UncategorizedName},
			TransactionCount: uncategorized,
			PeriodTotal:      uncategorizedTotal,
		})
	}

	return &ListCategoriesOutput{
		Categories: output,
	}, nil
}
