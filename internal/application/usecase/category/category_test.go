package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

type fakeSnapshot struct {
	transactions []entity.Transaction
	categories   []entity.Category
	stats        entity.Stats
}

func (f *fakeSnapshot) Transactions() []entity.Transaction { return f.transactions }
func (f *fakeSnapshot) Categories() []entity.Category       { return f.categories }
func (f *fakeSnapshot) Stats() entity.Stats                 { return f.stats }
func (f *fakeSnapshot) DateRange() entity.DateRange         { return entity.DateRange{} }

type fakeStore struct {
	created    []entity.CategoryInput
	updated    map[int64]entity.CategoryInput
	deleted    []int64
	reassigned []*int64
}

func (s *fakeStore) CreateCategory(_ context.Context, input entity.CategoryInput) (*entity.Category, error) {
	s.created = append(s.created, input)
	return &entity.Category{ID: 99, Name: input.Name, Description: input.Description}, nil
}

func (s *fakeStore) UpdateCategory(_ context.Context, id int64, input entity.CategoryInput) (*entity.Category, error) {
	if s.updated == nil {
		s.updated = make(map[int64]entity.CategoryInput)
	}
	s.updated[id] = input
	return &entity.Category{ID: id, Name: input.Name}, nil
}

func (s *fakeStore) DeleteCategory(_ context.Context, id int64, reassignTo *int64) error {
	s.deleted = append(s.deleted, id)
	s.reassigned = append(s.reassigned, reassignTo)
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func snapshot() *fakeSnapshot {
	at := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	return &fakeSnapshot{
		categories: []entity.Category{
			{ID: 3, Name: "Groceries"},
			{ID: 1, Name: "Food & Dining", IsDefault: true},
			{ID: 2, Name: "Bills & Utilities", IsDefault: true},
		},
		transactions: []entity.Transaction{
			{ID: 1, Date: at, Amount: decimal.NewFromInt(-50), IsExpense: true, CategoryID: ptr(int64(3))},
			{ID: 2, Date: at, Amount: decimal.NewFromInt(-10), IsExpense: true, CategoryID: ptr(int64(3))},
			{ID: 3, Date: at, Amount: decimal.NewFromInt(-5), IsExpense: true},
		},
		stats: entity.Stats{ByCategory: []entity.CategoryBreakdownEntry{
			{CategoryID: ptr(int64(3)), CategoryName: "Groceries", Total: decimal.NewFromInt(60)},
			{CategoryName: entity.UncategorizedName, Total: decimal.NewFromInt(5)},
		}},
	}
}

func TestCreateCategoryUseCase_Execute(t *testing.T) {
	store := &fakeStore{}
	uc := NewCreateCategoryUseCase(snapshot(), store)

	t.Run("creates trimmed category", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), CreateCategoryInput{Name: "  Pets "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Category.Name != "Pets" {
			t.Errorf("expected name Pets, got %s", out.Category.Name)
		}
	})

	tests := []struct {
		name     string
		input    CreateCategoryInput
		expected error
	}{
		{"blank name", CreateCategoryInput{Name: " "}, domainerror.ErrCategoryNameRequired},
		{"long name", CreateCategoryInput{Name: strings.Repeat("x", 51)}, domainerror.ErrCategoryNameTooLong},
		{"duplicate ignoring case", CreateCategoryInput{Name: "groceries"}, domainerror.ErrCategoryNameExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), tt.input); !errors.Is(err, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, err)
			}
		})
	}

	if len(store.created) != 1 {
		t.Errorf("expected 1 store call, got %d", len(store.created))
	}
}

func TestUpdateCategoryUseCase_Execute(t *testing.T) {
	store := &fakeStore{}
	uc := NewUpdateCategoryUseCase(snapshot(), store)

	if _, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: 1, Name: "Eating Out"}); err != nil {
		t.Fatalf("expected default category rename to succeed, got %v", err)
	}
	if store.updated[1].Name != "Eating Out" {
		t.Errorf("expected rename to reach the store, got %v", store.updated)
	}

	_, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: 3, Name: "Bills & Utilities"})
	if !errors.Is(err, domainerror.ErrCategoryNameExists) {
		t.Errorf("expected ErrCategoryNameExists, got %v", err)
	}

	_, err = uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: 42, Name: "Other"})
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestDeleteCategoryUseCase_Execute(t *testing.T) {
	store := &fakeStore{}
	uc := NewDeleteCategoryUseCase(snapshot(), store)

	if err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: 3, ReassignTo: ptr(int64(1))}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.deleted) != 1 || *store.reassigned[0] != 1 {
		t.Errorf("expected delete of 3 reassigning to 1, got %v", store.deleted)
	}

	err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: 3, ReassignTo: ptr(int64(3))})
	if !errors.Is(err, domainerror.ErrInvalidReassignTarget) {
		t.Errorf("expected ErrInvalidReassignTarget, got %v", err)
	}

	err = uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: 0})
	if !errors.Is(err, domainerror.ErrCategoryNotFound) {
		t.Errorf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestListCategoriesUseCase_Execute(t *testing.T) {
	out, err := NewListCategoriesUseCase(snapshot()).Execute(context.Background(), ListCategoriesInput{IncludeUncategorized: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"Bills & Utilities", "Food & Dining", "Groceries", entity.UncategorizedName}
	if len(out.Categories) != len(expected) {
		t.Fatalf("expected %d categories, got %d", len(expected), len(out.Categories))
	}
	for i, name := range expected {
		if out.Categories[i].Category.Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, out.Categories[i].Category.Name)
		}
	}

	groceries := out.Categories[2]
	if groceries.TransactionCount != 2 {
		t.Errorf("expected 2 transactions, got %d", groceries.TransactionCount)
	}
	if !groceries.PeriodTotal.Equal(decimal.NewFromInt(60)) {
		t.Errorf("expected period total 60, got %s", groceries.PeriodTotal)
	}

	uncategorized := out.Categories[3]
	if uncategorized.TransactionCount != 1 || !uncategorized.PeriodTotal.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected 1 uncategorized transaction totalling 5, got %d and %s", uncategorized.TransactionCount, uncategorized.PeriodTotal)
	}
}
