// Package history persists the outcome of store operations as sync runs.
package history

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// shutdownFlushTimeout bounds the final write after the worker context ends.
const shutdownFlushTimeout = 5 * time.Second

// pruneInterval is the minimum time between two retention sweeps.
const pruneInterval = time.Hour

// Worker buffers sync runs in memory and writes them to the repository in batches.
type Worker struct {
	repo          adapter.SyncRunRepository
	runs          chan *entity.SyncRun
	flushInterval time.Duration
	batchSize     int
	retention     time.Duration
	dropped       atomic.Int64
	lastPrune     time.Time
	now           func() time.Time
	logger        *slog.Logger
}

// WorkerConfig holds configuration for the history worker.
type WorkerConfig struct {
	FlushInterval time.Duration
	BatchSize     int
	BufferSize    int
	Retention     time.Duration // Zero keeps runs forever
}

// DefaultWorkerConfig returns the default worker configuration.
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		FlushInterval: 5 * time.Second,
		BatchSize:     50,
		BufferSize:    1024,
		Retention:     30 * 24 * time.Hour,
	}
}

// NewWorker creates a new history worker.
func NewWorker(repo adapter.SyncRunRepository, config WorkerConfig, logger *slog.Logger) *Worker {
	defaults := DefaultWorkerConfig()
	if config.FlushInterval <= 0 {
		config.FlushInterval = defaults.FlushInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = defaults.BatchSize
	}
	if config.BufferSize <= 0 {
		config.BufferSize = defaults.BufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Worker{
		repo:          repo,
		runs:          make(chan *entity.SyncRun, config.BufferSize),
		flushInterval: config.FlushInterval,
		batchSize:     config.BatchSize,
		retention:     config.Retention,
		now:           time.Now,
		logger:        logger.With("component", "history_worker"),
	}
}

// Record queues a run without blocking. It returns false and counts the run as
// dropped when the buffer is full.
func (w *Worker) Record(run *entity.SyncRun) bool {
	select {
	case w.runs <- run:
		return true
	default:
		w.dropped.Add(1)
		return false
	}
}

// Dropped returns how many runs were discarded because the buffer was full.
func (w *Worker) Dropped() int64 {
	return w.dropped.Load()
}

// Start begins the worker loop. It blocks until the context is cancelled, then
// writes whatever is still buffered.
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("History worker started",
		"flush_interval", w.flushInterval,
		"batch_size", w.batchSize,
		"retention", w.retention,
	)

	ticker := time.NewTicker(w.flushInterval)
	defer ticker.Stop()

	w.prune(ctx)

	var pending []*entity.SyncRun
	for {
		select {
		case <-ctx.Done():
			flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownFlushTimeout)
			pending = append(pending, w.drain()...)
			w.write(flushCtx, pending)
			cancel()
			w.logger.Info("History worker shutting down", "dropped", w.Dropped())
			return
		case run := <-w.runs:
			pending = append(pending, run)
			if len(pending) >= w.batchSize {
				w.write(ctx, pending)
				pending = nil
			}
		case <-ticker.C:
			w.write(ctx, pending)
			pending = nil
			w.prune(ctx)
		}
	}
}

// FlushNow writes every buffered run immediately (useful for testing).
func (w *Worker) FlushNow(ctx context.Context) {
	w.write(ctx, w.drain())
}

func (w *Worker) drain() []*entity.SyncRun {
	var runs []*entity.SyncRun
	for {
		select {
		case run := <-w.runs:
			runs = append(runs, run)
		default:
			return runs
		}
	}
}

// write stores runs in chunks of batchSize. Failed chunks are logged and discarded.
func (w *Worker) write(ctx context.Context, runs []*entity.SyncRun) {
	for start := 0; start < len(runs); start += w.batchSize {
		end := min(start+w.batchSize, len(runs))
		batch := runs[start:end]
		if err := w.repo.CreateBatch(ctx, batch); err != nil {
			w.logger.Error("Failed to store sync runs", "count", len(batch), "error", err)
			continue
		}
		w.logger.Debug("Stored sync runs", "count", len(batch))
	}
}

func (w *Worker) prune(ctx context.Context) {
	if w.retention <= 0 {
		return
	}
	now := w.now()
	if !w.lastPrune.IsZero() && now.Sub(w.lastPrune) < pruneInterval {
		return
	}
	w.lastPrune = now

	deleted, err := w.repo.DeleteOlderThan(ctx, now.Add(-w.retention))
	if err != nil {
		w.logger.Error("Failed to prune sync runs", "error", err)
		return
	}
	if deleted > 0 {
		w.logger.Info("Pruned sync runs", "deleted", deleted)
	}
}
