package transaction

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

type fakeSnapshot struct {
	transactions []entity.Transaction
}

func (f *fakeSnapshot) Transactions() []entity.Transaction { return f.transactions }
func (f *fakeSnapshot) Categories() []entity.Category       { return nil }
func (f *fakeSnapshot) Stats() entity.Stats                 { return entity.EmptyStats() }
func (f *fakeSnapshot) DateRange() entity.DateRange         { return entity.DateRange{} }

type memoryViews struct {
	mu    sync.Mutex
	views map[uuid.UUID]entity.TransactionView
	saves int
}

func newMemoryViews() *memoryViews {
	return &memoryViews{views: make(map[uuid.UUID]entity.TransactionView)}
}

func (m *memoryViews) Save(_ context.Context, view *entity.TransactionView) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.views[view.ID] = *view
	m.saves++
	return nil
}

func (m *memoryViews) FindByID(_ context.Context, id uuid.UUID) (*entity.TransactionView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	view, ok := m.views[id]
	if !ok {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeViewNotFound, "view not found", domainerror.ErrViewNotFound)
	}
	return &view, nil
}

func (m *memoryViews) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.views, id)
	return nil
}

type recordingStore struct {
	created  []entity.TransactionInput
	updated  map[int64]entity.TransactionInput
	deleted  []int64
	imported []entity.ImportFile
	result   []entity.Transaction
	err      error
}

func (s *recordingStore) CreateTransaction(_ context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = append(s.created, input)
	txn := entity.Transaction{ID: int64(len(s.created)), Date: input.Date, Amount: input.Amount, Description: input.Description, CategoryID: input.CategoryID}
	txn.Normalize()
	return &txn, nil
}

func (s *recordingStore) UpdateTransaction(_ context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.updated == nil {
		s.updated = make(map[int64]entity.TransactionInput)
	}
	s.updated[id] = input
	txn := entity.Transaction{ID: id, Date: input.Date, Amount: input.Amount, Description: input.Description}
	txn.Normalize()
	return &txn, nil
}

func (s *recordingStore) DeleteTransaction(_ context.Context, id int64) error {
	if s.err != nil {
		return s.err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *recordingStore) ImportTransactions(_ context.Context, file entity.ImportFile) ([]entity.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.imported = append(s.imported, file)
	return s.result, nil
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC)
}

func txn(id int64, d int, amount int64, description string, categoryID *int64) entity.Transaction {
	t := entity.Transaction{
		ID:          id,
		Date:        day(d),
		Amount:      decimal.NewFromInt(amount),
		Description: description,
		CategoryID:  categoryID,
	}
	t.Normalize()
	return t
}

func ptr[T any](v T) *T {
	return &v
}

func ids(transactions []entity.Transaction) []int64 {
	result := make([]int64, len(transactions))
	for i, t := range transactions {
		result[i] = t.ID
	}
	return result
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// sequence builds n transactions, one per day walking back from Jan 31.
func sequence(n int) []entity.Transaction {
	result := make([]entity.Transaction, n)
	for i := 0; i < n; i++ {
		t := entity.Transaction{
			ID:          int64(i + 1),
			Date:        day(31).AddDate(0, 0, -i),
			Amount:      decimal.NewFromInt(-1),
			Description: "item",
		}
		t.Normalize()
		result[i] = t
	}
	return result
}
