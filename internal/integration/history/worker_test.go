package history

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finance-tracker/client/internal/domain/entity"
)

type fakeRepo struct {
	mu      sync.Mutex
	batches [][]*entity.SyncRun
	cutoffs []time.Time
	failOn  int // 1-based batch number that fails, 0 for none
}

func (r *fakeRepo) CreateBatch(_ context.Context, runs []*entity.SyncRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failOn == len(r.batches)+1 {
		r.failOn = 0
		return errors.New("database is locked")
	}
	r.batches = append(r.batches, append([]*entity.SyncRun(nil), runs...))
	return nil
}

func (r *fakeRepo) FindRecent(context.Context, int) ([]*entity.SyncRun, error) {
	return nil, nil
}

func (r *fakeRepo) FindByResource(context.Context, string, int) ([]*entity.SyncRun, error) {
	return nil, nil
}

func (r *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cutoffs = append(r.cutoffs, cutoff)
	return 0, nil
}

func (r *fakeRepo) stored() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := 0
	for _, b := range r.batches {
		total += len(b)
	}
	return total
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func run(resource string) *entity.SyncRun {
	return entity.NewSyncRun(resource, "load", time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC))
}

func TestWorkerFlushNow(t *testing.T) {
	t.Run("writes buffered runs in batches", func(t *testing.T) {
		repo := &fakeRepo{}
		w := NewWorker(repo, WorkerConfig{BatchSize: 2, BufferSize: 10}, quietLogger())

		for range 5 {
			assert.True(t, w.Record(run("transactions")))
		}
		w.FlushNow(context.Background())

		require.Len(t, repo.batches, 3)
		assert.Len(t, repo.batches[0], 2)
		assert.Len(t, repo.batches[2], 1)
		assert.Equal(t, 5, repo.stored())
	})

	t.Run("failed batch is discarded and the rest still written", func(t *testing.T) {
		repo := &fakeRepo{failOn: 1}
		w := NewWorker(repo, WorkerConfig{BatchSize: 2, BufferSize: 10}, quietLogger())

		for range 4 {
			w.Record(run("categories"))
		}
		w.FlushNow(context.Background())

		assert.Len(t, repo.batches, 1)
		assert.Equal(t, 2, repo.stored())
	})

	t.Run("empty buffer writes nothing", func(t *testing.T) {
		repo := &fakeRepo{}
		w := NewWorker(repo, WorkerConfig{}, quietLogger())
		w.FlushNow(context.Background())
		assert.Empty(t, repo.batches)
	})
}

func TestWorkerRecordDropsWhenFull(t *testing.T) {
	w := NewWorker(&fakeRepo{}, WorkerConfig{BufferSize: 2}, quietLogger())

	assert.True(t, w.Record(run("stats")))
	assert.True(t, w.Record(run("stats")))
	assert.False(t, w.Record(run("stats")))
	assert.Equal(t, int64(1), w.Dropped())
}

func TestWorkerStart(t *testing.T) {
	t.Run("flushes on batch size and on shutdown", func(t *testing.T) {
		repo := &fakeRepo{}
		w := NewWorker(repo, WorkerConfig{
			FlushInterval: time.Hour,
			BatchSize:     3,
			BufferSize:    10,
		}, quietLogger())

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			w.Start(ctx)
			close(done)
		}()

		for range 4 {
			w.Record(run("transactions"))
		}
		assert.Eventually(t, func() bool { return repo.stored() >= 3 }, time.Second, 5*time.Millisecond)

		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("worker did not stop")
		}
		assert.Equal(t, 4, repo.stored())
	})

	t.Run("flushes on tick", func(t *testing.T) {
		repo := &fakeRepo{}
		w := NewWorker(repo, WorkerConfig{
			FlushInterval: 10 * time.Millisecond,
			BatchSize:     100,
		}, quietLogger())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go w.Start(ctx)

		w.Record(run("categories"))
		assert.Eventually(t, func() bool { return repo.stored() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("prunes with the retention cutoff", func(t *testing.T) {
		repo := &fakeRepo{}
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		w := NewWorker(repo, WorkerConfig{
			FlushInterval: time.Hour,
			Retention:     48 * time.Hour,
		}, quietLogger())
		w.now = func() time.Time { return now }

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		go func() {
			w.Start(ctx)
			close(done)
		}()
		cancel()
		<-done

		require.Len(t, repo.cutoffs, 1)
		assert.Equal(t, now.Add(-48*time.Hour), repo.cutoffs[0])
	})
}
