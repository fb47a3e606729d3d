package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// begin issues a new generation for resource, raises its loading flag and
// clears the error slot.
func (s *Store) begin(resource string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, closedError()
	}
	s.generations[resource]++
	s.setLoadingLocked(resource, true)
	s.lastError = ""
	s.bumpLocked()
	return s.generations[resource], nil
}

// finish runs apply when gen is still the newest generation of resource.
// A stale completion leaves the state, and the loading flag owned by the
// newer request, untouched.
func (s *Store) finish(resource string, gen uint64, apply func()) (version uint64, current bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.generations[resource] != gen {
		return s.version, false
	}
	s.setLoadingLocked(resource, false)
	apply()
	return s.bumpLocked(), true
}

func (s *Store) completeLoad(resource string, gen uint64, event Event, apply func()) bool {
	version, current := s.finish(resource, gen, apply)
	event.FinishedAt = s.now()
	event.Version = version

	switch {
	case !current:
		event.Status = entity.SyncStatusStale
		event.Err = nil
		s.logger.Warn("Discarded stale response", "resource", resource, "generation", gen)
	case event.Err != nil:
		event.Status = entity.SyncStatusFailed
		s.logger.Error("Load failed", "resource", resource, "error", event.Err)
	default:
		event.Status = entity.SyncStatusSucceeded
		s.logger.Debug("Load completed", "resource", resource, "items", event.ItemCount, "version", version)
	}

	s.metrics.RecordLoad(resource, string(event.Status))
	s.emit(event)
	return current
}

// LoadTransactions replaces the cached transactions with the API's answer to
// query. On failure the previous collection is kept and the error recorded.
func (s *Store) LoadTransactions(ctx context.Context, query adapter.TransactionQuery) ([]entity.Transaction, error) {
	started := s.now()
	gen, err := s.begin(ResourceTransactions)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.lastQuery = query
	s.mu.Unlock()

	event := Event{Resource: ResourceTransactions, Operation: OperationLoad, StartedAt: started}

	transactions, err := s.api.ListTransactions(ctx, query)
	if err != nil {
		event.Err = err
		s.completeLoad(ResourceTransactions, gen, event, func() {
			s.lastError = domainerror.DetailOrDefault(err, msgFetchTransactions)
		})
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	transactions = s.normalize(transactions)
	event.ItemCount = len(transactions)
	s.completeLoad(ResourceTransactions, gen, event, func() {
		s.transactions = transactions
	})
	return cloneTransactions(transactions), nil
}

// normalize enforces IsExpense == (Amount < 0). A disagreeing record from the
// API is logged and corrected.
func (s *Store) normalize(transactions []entity.Transaction) []entity.Transaction {
	if transactions == nil {
		return []entity.Transaction{}
	}
	for i := range transactions {
		if err := transactions[i].Validate(); err != nil {
			s.logger.Error("Invalid transaction from finance API",
				"transaction_id", transactions[i].ID,
				"error", err,
			)
			transactions[i].Normalize()
		}
	}
	return transactions
}

// LoadCategories replaces the cached categories.
func (s *Store) LoadCategories(ctx context.Context) ([]entity.Category, error) {
	started := s.now()
	gen, err := s.begin(ResourceCategories)
	if err != nil {
		return nil, err
	}

	event := Event{Resource: ResourceCategories, Operation: OperationLoad, StartedAt: started}

	categories, err := s.api.ListCategories(ctx)
	if err != nil {
		event.Err = err
		s.completeLoad(ResourceCategories, gen, event, func() {
			s.lastError = domainerror.DetailOrDefault(err, msgFetchCategories)
		})
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	if categories == nil {
		categories = []entity.Category{}
	}

	event.ItemCount = len(categories)
	s.completeLoad(ResourceCategories, gen, event, func() {
		s.categories = categories
	})
	return append([]entity.Category(nil), categories...), nil
}

// beginStats issues a stats generation. A non-nil dateRange becomes the
// current range in the same critical section, so the newest stats request
// always targets DateRange().
func (s *Store) beginStats(dateRange *entity.DateRange) (uint64, entity.DateRange, uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, entity.DateRange{}, 0, closedError()
	}
	if dateRange != nil {
		s.dateRange = dateRange.Clone()
	}
	s.generations[ResourceStats]++
	s.setLoadingLocked(ResourceStats, true)
	s.lastError = ""
	version := s.bumpLocked()
	return s.generations[ResourceStats], s.dateRange.Clone(), version, nil
}

func (s *Store) isCurrent(resource string, gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed && s.generations[resource] == gen
}

// LoadStats makes dateRange the current range, then fetches its category
// breakdown and the spending trends concurrently. If either fails the stats
// are reset to the empty shape.
func (s *Store) LoadStats(ctx context.Context, dateRange entity.DateRange) (entity.Stats, error) {
	started := s.now()
	gen, current, _, err := s.beginStats(&dateRange)
	if err != nil {
		return entity.EmptyStats(), err
	}
	return s.fetchStats(ctx, gen, current, started)
}

// reloadStats refetches stats for the stored range.
func (s *Store) reloadStats(ctx context.Context) (entity.Stats, error) {
	started := s.now()
	gen, current, _, err := s.beginStats(nil)
	if err != nil {
		return entity.EmptyStats(), err
	}
	return s.fetchStats(ctx, gen, current, started)
}

func (s *Store) fetchStats(ctx context.Context, gen uint64, dateRange entity.DateRange, started time.Time) (entity.Stats, error) {
	event := Event{Resource: ResourceStats, Operation: OperationLoad, StartedAt: started}

	// A newer range was set while this request was queued.
	if !s.isCurrent(ResourceStats, gen) {
		s.completeLoad(ResourceStats, gen, event, func() {})
		return s.Stats(), nil
	}

	var (
		breakdown []entity.CategoryBreakdownEntry
		trends    *entity.Trends
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		breakdown, err = s.api.SpendingByCategory(gctx, dateRange)
		return err
	})
	g.Go(func() error {
		var err error
		trends, err = s.api.SpendingTrends(gctx, s.trends)
		return err
	})

	if err := g.Wait(); err != nil {
		event.Err = err
		if !s.completeLoad(ResourceStats, gen, event, func() {
			s.stats = entity.EmptyStats()
			s.lastError = domainerror.DetailOrDefault(err, msgFetchStats)
		}) {
			return s.Stats(), nil
		}
		return entity.EmptyStats(), fmt.Errorf("failed to load stats: %w", err)
	}

	stats := entity.EmptyStats()
	stats.ByCategory = append(stats.ByCategory, breakdown...)
	if trends != nil {
		stats.Trends.Periods = append(stats.Trends.Periods, trends.Periods...)
	}

	event.ItemCount = len(stats.ByCategory) + len(stats.Trends.Periods)
	if !s.completeLoad(ResourceStats, gen, event, func() {
		s.stats = stats
	}) {
		return s.Stats(), nil
	}
	return stats.Clone(), nil
}

// EnsureDefaultCategories asks the API to create any missing default
// categories. It is idempotent on the server side.
func (s *Store) EnsureDefaultCategories(ctx context.Context) error {
	s.mu.RLock()
	closed := s.closed
	s.mu.RUnlock()
	if closed {
		return closedError()
	}

	started := s.now()
	event := Event{Resource: ResourceCategories, Operation: OperationCreateDefaults, StartedAt: started}

	categories, err := s.api.CreateDefaultCategories(ctx)
	event.FinishedAt = s.now()
	event.Version = s.Version()
	if err != nil {
		event.Status = entity.SyncStatusFailed
		event.Err = err
		s.emit(event)
		return fmt.Errorf("failed to create default categories: %w", err)
	}

	event.Status = entity.SyncStatusSucceeded
	event.ItemCount = len(categories)
	s.emit(event)
	return nil
}

// Initialize runs the startup protocol once: default categories, then
// transactions and categories concurrently, then stats for the current range.
// Load failures stay in the error slot; Initialize only fails when the store
// is closed.
func (s *Store) Initialize(ctx context.Context) error {
	s.initOnce.Do(func() {
		s.initErr = s.initialize(ctx)
	})
	return s.initErr
}

func (s *Store) initialize(ctx context.Context) error {
	if err := s.EnsureDefaultCategories(ctx); err != nil {
		if isClosed(err) {
			return err
		}
		s.logger.Warn("Default categories bootstrap failed, continuing", "error", err)
	}

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.LoadTransactions(ctx, adapter.TransactionQuery{})
		return closedOnly(err)
	})
	g.Go(func() error {
		_, err := s.LoadCategories(ctx)
		return closedOnly(err)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if _, err := s.reloadStats(ctx); closedOnly(err) != nil {
		return err
	}

	s.mu.Lock()
	s.initialized = true
	s.bumpLocked()
	s.mu.Unlock()

	s.logger.Info("Store initialized", "version", s.Version())
	return nil
}

// SetDateRange stores a new stats range and reloads stats only. Transactions
// and categories are range independent.
func (s *Store) SetDateRange(ctx context.Context, dateRange entity.DateRange) (entity.Stats, error) {
	if err := dateRange.Validate(); err != nil {
		return entity.Stats{}, err
	}

	started := s.now()
	gen, current, version, err := s.beginStats(&dateRange)
	if err != nil {
		return entity.Stats{}, err
	}

	s.emit(Event{
		Resource:   ResourceDateRange,
		Operation:  OperationUpdate,
		Status:     entity.SyncStatusSucceeded,
		Version:    version,
		StartedAt:  started,
		FinishedAt: s.now(),
	})

	return s.fetchStats(ctx, gen, current, started)
}

// Refresh reloads transactions and categories concurrently, then stats.
// Failures are recorded in the error slot; the first one is returned.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.RLock()
	query := s.lastQuery
	s.mu.RUnlock()

	var g errgroup.Group
	g.Go(func() error {
		_, err := s.LoadTransactions(ctx, query)
		return err
	})
	g.Go(func() error {
		_, err := s.LoadCategories(ctx)
		return err
	})
	loadErr := g.Wait()

	_, statsErr := s.reloadStats(ctx)
	if loadErr != nil {
		return loadErr
	}
	return statsErr
}

func isClosed(err error) bool {
	return err != nil && errors.Is(err, domainerror.ErrStoreClosed)
}

func closedOnly(err error) error {
	if isClosed(err) {
		return err
	}
	return nil
}
