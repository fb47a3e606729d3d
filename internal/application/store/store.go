// Package store holds the single in-memory snapshot of transactions,
// categories and stats shared by every reader of the process.
package store

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

// Resources tracked by loading flags, generations and events.
const (
	ResourceTransactions = "transactions"
	ResourceCategories   = "categories"
	ResourceStats        = "stats"
	ResourceImport       = "importing"
	ResourceDateRange    = "date_range"
)

// Operations reported in events.
const (
	OperationLoad           = "load"
	OperationCreate         = "create"
	OperationUpdate         = "update"
	OperationDelete         = "delete"
	OperationImport         = "import"
	OperationCreateDefaults = "create_defaults"
)

// Messages recorded in the error slot when the API gives no detail.
const (
	msgFetchTransactions = "Failed to fetch transactions"
	msgFetchCategories   = "Failed to fetch categories"
	msgFetchStats        = "Failed to fetch statistics"
	msgCreateTransaction = "Failed to create transaction"
	msgUpdateTransaction = "Failed to update transaction"
	msgDeleteTransaction = "Failed to delete transaction"
	msgImport            = "Failed to import transactions"
	msgCreateCategory    = "Failed to create category"
	msgUpdateCategory    = "Failed to update category"
	msgDeleteCategory    = "Failed to delete category"
)

// Loading holds one independent flag per resource.
type Loading struct {
	Transactions bool
	Categories   bool
	Importing    bool
	Stats        bool
}

// Any reports whether any resource is loading.
func (l Loading) Any() bool {
	return l.Transactions || l.Categories || l.Importing || l.Stats
}

// Snapshot is a copy of the store state at one version.
type Snapshot struct {
	Transactions []entity.Transaction
	Categories   []entity.Category
	Stats        entity.Stats
	DateRange    entity.DateRange
	Loading      Loading
	Error        string // Last recorded error, empty when the last operation succeeded
	Version      uint64 // Incremented on every state change
	Initialized  bool
}

// Options configures a Store.
type Options struct {
	Trends           entity.TrendsQuery
	DefaultRangeDays int
	Metrics          adapter.MetricsRecorder
	Logger           *slog.Logger
	Now              func() time.Time
}

var (
	_ adapter.SnapshotReader   = (*Store)(nil)
	_ adapter.TransactionStore = (*Store)(nil)
	_ adapter.CategoryStore    = (*Store)(nil)
)

// Store is the authoritative cache in front of the finance API. Every write
// goes through its operations; readers get copies.
type Store struct {
	api     adapter.FinanceAPI
	metrics adapter.MetricsRecorder
	logger  *slog.Logger
	trends  entity.TrendsQuery
	now     func() time.Time

	mu           sync.RWMutex
	transactions []entity.Transaction
	categories   []entity.Category
	stats        entity.Stats
	dateRange    entity.DateRange
	lastQuery    adapter.TransactionQuery
	loading      Loading
	importing    int
	lastError    string
	version      uint64
	generations  map[string]uint64
	initialized  bool
	closed       bool

	initOnce sync.Once
	initErr  error

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSubID   int
}

// New creates a Store. The snapshot starts empty with the default date range.
func New(api adapter.FinanceAPI, opts Options) *Store {
	if opts.Metrics == nil {
		opts.Metrics = adapter.NoopMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.DefaultRangeDays <= 0 {
		opts.DefaultRangeDays = entity.DefaultRangeDays
	}

	return &Store{
		api:          api,
		metrics:      opts.Metrics,
		logger:       opts.Logger.With("component", "store"),
		trends:       opts.Trends,
		now:          opts.Now,
		transactions: []entity.Transaction{},
		categories:   []entity.Category{},
		stats:        entity.EmptyStats(),
		dateRange:    entity.DefaultDateRange(opts.Now(), opts.DefaultRangeDays),
		generations:  make(map[string]uint64),
		subscribers:  make(map[int]func(Event)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Transactions: cloneTransactions(s.transactions),
		Categories:   slices.Clone(s.categories),
		Stats:        s.stats.Clone(),
		DateRange:    s.dateRange.Clone(),
		Loading:      s.loading,
		Error:        s.lastError,
		Version:      s.version,
		Initialized:  s.initialized,
	}
}

// Transactions returns a copy of the cached transactions in delivery order.
func (s *Store) Transactions() []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTransactions(s.transactions)
}

// Categories returns a copy of the cached categories.
func (s *Store) Categories() []entity.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.categories)
}

// Stats returns a copy of the stats of the current date range.
func (s *Store) Stats() entity.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.Clone()
}

// DateRange returns the current stats date range.
func (s *Store) DateRange() entity.DateRange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dateRange.Clone()
}

// Version returns the current snapshot version.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Close rejects every later operation and drops all subscribers.
// In-flight responses are discarded and their loading flags cleared. Importing
// follows its own counter and drops when the running import returns.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	for resource := range s.generations {
		s.generations[resource]++
	}
	s.loading = Loading{Importing: s.importing > 0}
	s.bumpLocked()
	s.mu.Unlock()

	s.subMu.Lock()
	s.subscribers = make(map[int]func(Event))
	s.subMu.Unlock()

	s.logger.Info("Store closed")
}

// bumpLocked records a state change. Callers hold mu.
func (s *Store) bumpLocked() uint64 {
	s.version++
	s.metrics.SetSnapshotVersion(s.version)
	return s.version
}

func (s *Store) setLoadingLocked(resource string, value bool) {
	switch resource {
	case ResourceTransactions:
		s.loading.Transactions = value
	case ResourceCategories:
		s.loading.Categories = value
	case ResourceStats:
		s.loading.Stats = value
	}
}

func closedError() error {
	return domainerror.NewStoreError(
		domainerror.ErrCodeStoreClosed,
		"store is closed",
		domainerror.ErrStoreClosed,
	)
}

func cloneTransactions(transactions []entity.Transaction) []entity.Transaction {
	result := make([]entity.Transaction, len(transactions))
	for i, txn := range transactions {
		result[i] = txn.Clone()
	}
	return result
}
