package store

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

type mutation struct {
	resource  string // Collection refetched on success
	operation string
	noun      string
	fallback  string
}

func (m mutation) label() string {
	return m.noun + "_" + m.operation
}

var (
	createTransaction  = mutation{ResourceTransactions, OperationCreate, "transaction", msgCreateTransaction}
	updateTransaction  = mutation{ResourceTransactions, OperationUpdate, "transaction", msgUpdateTransaction}
	deleteTransaction  = mutation{ResourceTransactions, OperationDelete, "transaction", msgDeleteTransaction}
	importTransactions = mutation{ResourceTransactions, OperationImport, "transactions", msgImport}
	createCategory     = mutation{ResourceCategories, OperationCreate, "category", msgCreateCategory}
	updateCategory     = mutation{ResourceCategories, OperationUpdate, "category", msgUpdateCategory}
	deleteCategory     = mutation{ResourceCategories, OperationDelete, "category", msgDeleteCategory}
)

func (s *Store) startMutation() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return closedError()
	}
	if s.lastError != "" {
		s.lastError = ""
		s.bumpLocked()
	}
	return nil
}

// failMutation records err in the error slot and returns it wrapped. The
// cached collections are not touched.
func (s *Store) failMutation(m mutation, started time.Time, err error) error {
	s.mu.Lock()
	s.lastError = domainerror.DetailOrDefault(err, m.fallback)
	version := s.bumpLocked()
	s.mu.Unlock()

	s.logger.Error("Mutation failed",
		"resource", m.resource,
		"operation", m.operation,
		"error", err,
	)
	s.metrics.RecordMutation(m.label(), false)
	s.emit(Event{
		Resource:   m.resource,
		Operation:  m.operation,
		Status:     entity.SyncStatusFailed,
		Err:        err,
		Version:    version,
		StartedAt:  started,
		FinishedAt: s.now(),
	})

	return fmt.Errorf("failed to %s %s: %w", m.operation, m.noun, err)
}

func (s *Store) completeMutation(m mutation, started time.Time, itemCount int) {
	s.metrics.RecordMutation(m.label(), true)
	s.emit(Event{
		Resource:   m.resource,
		Operation:  m.operation,
		Status:     entity.SyncStatusSucceeded,
		ItemCount:  itemCount,
		Version:    s.Version(),
		StartedAt:  started,
		FinishedAt: s.now(),
	})
}

// refetch reloads resource after a successful mutation. A failed refetch is
// recorded by the load itself and does not fail the mutation.
func (s *Store) refetch(ctx context.Context, resource string) {
	var err error
	switch resource {
	case ResourceTransactions:
		s.mu.RLock()
		query := s.lastQuery
		s.mu.RUnlock()
		_, err = s.LoadTransactions(ctx, query)
	case ResourceCategories:
		_, err = s.LoadCategories(ctx)
	}
	if err != nil {
		s.logger.Warn("Refetch after mutation failed", "resource", resource, "error", err)
	}
}

// CreateTransaction creates a transaction remotely, then reloads transactions.
func (s *Store) CreateTransaction(ctx context.Context, input entity.TransactionInput) (*entity.Transaction, error) {
	if err := s.startMutation(); err != nil {
		return nil, err
	}
	started := s.now()

	created, err := s.api.CreateTransaction(ctx, input)
	if err != nil {
		return nil, s.failMutation(createTransaction, started, err)
	}
	created.Normalize()

	s.refetch(ctx, ResourceTransactions)
	s.completeMutation(createTransaction, started, 1)
	return created, nil
}

// UpdateTransaction replaces a transaction remotely, then reloads transactions.
func (s *Store) UpdateTransaction(ctx context.Context, id int64, input entity.TransactionInput) (*entity.Transaction, error) {
	if err := s.startMutation(); err != nil {
		return nil, err
	}
	started := s.now()

	updated, err := s.api.UpdateTransaction(ctx, id, input)
	if err != nil {
		return nil, s.failMutation(updateTransaction, started, err)
	}
	updated.Normalize()

	s.refetch(ctx, ResourceTransactions)
	s.completeMutation(updateTransaction, started, 1)
	return updated, nil
}

// DeleteTransaction deletes a transaction remotely, then reloads transactions.
func (s *Store) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.startMutation(); err != nil {
		return err
	}
	started := s.now()

	if err := s.api.DeleteTransaction(ctx, id); err != nil {
		return s.failMutation(deleteTransaction, started, err)
	}

	s.refetch(ctx, ResourceTransactions)
	s.completeMutation(deleteTransaction, started, 1)
	return nil
}

// ImportTransactions uploads a statement and reloads transactions. The
// Importing flag stays up until the reload finished. The returned records are
// the ones the import produced, which may be fewer than the file held.
func (s *Store) ImportTransactions(ctx context.Context, file entity.ImportFile) ([]entity.Transaction, error) {
	if err := s.startMutation(); err != nil {
		return nil, err
	}
	started := s.now()

	s.setImporting(1)
	defer s.setImporting(-1)

	imported, err := s.api.ImportFile(ctx, file)
	if err != nil {
		return nil, s.failMutation(importTransactions, started, err)
	}
	imported = s.normalize(imported)

	s.refetch(ctx, ResourceTransactions)
	s.completeMutation(importTransactions, started, len(imported))
	return imported, nil
}

func (s *Store) setImporting(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.importing += delta
	s.loading.Importing = s.importing > 0
	s.bumpLocked()
}

// CreateCategory creates a category remotely, then reloads categories.
func (s *Store) CreateCategory(ctx context.Context, input entity.CategoryInput) (*entity.Category, error) {
	if err := s.startMutation(); err != nil {
		return nil, err
	}
	started := s.now()

	created, err := s.api.CreateCategory(ctx, input)
	if err != nil {
		return nil, s.failMutation(createCategory, started, err)
	}

	s.refetch(ctx, ResourceCategories)
	s.completeMutation(createCategory, started, 1)
	return created, nil
}

// UpdateCategory renames or redescribes a category, then reloads categories
// and transactions, which embed the category.
func (s *Store) UpdateCategory(ctx context.Context, id int64, input entity.CategoryInput) (*entity.Category, error) {
	if err := s.startMutation(); err != nil {
		return nil, err
	}
	started := s.now()

	updated, err := s.api.UpdateCategory(ctx, id, input)
	if err != nil {
		return nil, s.failMutation(updateCategory, started, err)
	}

	s.refetchBoth(ctx)
	s.completeMutation(updateCategory, started, 1)
	return updated, nil
}

// DeleteCategory deletes a category, moving its transactions to reassignTo
// or leaving them uncategorized. Default categories are rejected without a
// remote call.
func (s *Store) DeleteCategory(ctx context.Context, id int64, reassignTo *int64) error {
	s.mu.RLock()
	isDefault := false
	if category := entity.FindCategory(s.categories, id); category != nil {
		isDefault = category.IsDefault
	}
	s.mu.RUnlock()

	if isDefault {
		return domainerror.NewCategoryError(
			domainerror.ErrCodeDefaultCategoryDelete,
			"default categories cannot be deleted",
			domainerror.ErrDefaultCategoryDelete,
		)
	}

	if err := s.startMutation(); err != nil {
		return err
	}
	started := s.now()

	if err := s.api.DeleteCategory(ctx, id, reassignTo); err != nil {
		return s.failMutation(deleteCategory, started, err)
	}

	s.refetchBoth(ctx)
	s.completeMutation(deleteCategory, started, 1)
	return nil
}

func (s *Store) refetchBoth(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		s.refetch(ctx, ResourceCategories)
		return nil
	})
	g.Go(func() error {
		s.refetch(ctx, ResourceTransactions)
		return nil
	})
	_ = g.Wait()
}
