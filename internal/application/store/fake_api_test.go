package store

import (
	"context"
	"sync"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// fakeAPI is an in-memory finance API. Hooks override the default behavior.
type fakeAPI struct {
	mu           sync.Mutex
	calls        []string
	transactions []entity.Transaction
	categories   []entity.Category
	breakdown    []entity.CategoryBreakdownEntry
	trends       entity.Trends
	nextID       int64

	listTransactions func(ctx context.Context, query adapter.TransactionQuery) ([]entity.Transaction, error)
	listErr          error
	categoriesErr    error
	defaultsErr      error
	breakdownErr     error
	trendsErr        error
	mutationErr      error
	importFile       func(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error)
	breakdownFor     func(r entity.DateRange) []entity.CategoryBreakdownEntry

	lastRange  entity.DateRange
	lastTrends entity.TrendsQuery
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{nextID: 100}
}

func (f *fakeAPI) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.Calls() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ListTransactions(ctx context.Context, query adapter.TransactionQuery) ([]entity.Transaction, error) {
	f.record("list_transactions")
	if f.listTransactions != nil {
		return f.listTransactions(ctx, query)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]entity.Transaction(nil), f.transactions...), nil
}

func (f *fakeAPI) ListCategories(context.Context) ([]entity.Category, error) {
	f.record("list_categories")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.categoriesErr != nil {
		return nil, f.categoriesErr
	}
	return append([]entity.Category(nil), f.categories...), nil
}

func (f *fakeAPI) CreateDefaultCategories(context.Context) ([]entity.Category, error) {
	f.record("create_defaults")
	if f.defaultsErr != nil {
		return nil, f.defaultsErr
	}
	return nil, nil
}

func (f *fakeAPI) SpendingByCategory(_ context.Context, r entity.DateRange) ([]entity.CategoryBreakdownEntry, error) {
	f.record("by_category")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRange = r
	if f.breakdownErr != nil {
		return nil, f.breakdownErr
	}
	if f.breakdownFor != nil {
		return f.breakdownFor(r), nil
	}
	return append([]entity.CategoryBreakdownEntry(nil), f.breakdown...), nil
}

func (f *fakeAPI) SpendingTrends(_ context.Context, q entity.TrendsQuery) (*entity.Trends, error) {
	f.record("trends")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastTrends = q
	if f.trendsErr != nil {
		return nil, f.trendsErr
	}
	trends := f.trends
	return &trends, nil
}

func (f *fakeAPI) ImportFile(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error) {
	f.record("import")
	if f.importFile != nil {
		return f.importFile(ctx, file)
	}
	return nil, f.mutationErr
}

func (f *fakeAPI) CreateTransaction(_ context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	f.record("create_transaction")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	f.nextID++
	txn := entity.Transaction{
		ID:          f.nextID,
		Date:        input.Date,
		Amount:      input.Amount,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		IsExpense:   input.IsExpense(),
		Source:      input.Source,
	}
	f.transactions = append([]entity.Transaction{txn}, f.transactions...)
	return &txn, nil
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	f.record("update_transaction")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions[i].Amount = input.Amount
			f.transactions[i].Description = input.Description
			f.transactions[i].IsExpense = input.IsExpense()
			txn := f.transactions[i]
			return &txn, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, id int64) error {
	f.record("delete_transaction")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return f.mutationErr
	}
	for i := range f.transactions {
		if f.transactions[i].ID == id {
			f.transactions = append(f.transactions[:i], f.transactions[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (f *fakeAPI) CreateCategory(_ context.Context, input entity.CategoryInput) (*entity.Category, error) {
	f.record("create_category")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	f.nextID++
	category := entity.Category{ID: f.nextID, Name: input.Name}
	f.categories = append(f.categories, category)
	return &category, nil
}

func (f *fakeAPI) UpdateCategory(_ context.Context, id int64, input entity.CategoryInput) (*entity.Category, error) {
	f.record("update_category")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return nil, f.mutationErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories[i].Name = input.Name
			category := f.categories[i]
			return &category, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeAPI) DeleteCategory(_ context.Context, id int64, _ *int64) error {
	f.record("delete_category")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mutationErr != nil {
		return f.mutationErr
	}
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return errNotFound
}
