package store

import (
	"time"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// Event describes one finished store operation.
type Event struct {
	Resource   string
	Operation  string
	Status     entity.SyncStatus
	ItemCount  int
	Err        error
	Version    uint64 // Snapshot version after the operation
	StartedAt  time.Time
	FinishedAt time.Time
}

// SyncRun converts the event into a history record.
func (e Event) SyncRun() *entity.SyncRun {
	run := entity.NewSyncRun(e.Resource, e.Operation, e.StartedAt)
	switch e.Status {
	case entity.SyncStatusSucceeded:
		run.MarkSucceeded(e.ItemCount, e.Version, e.FinishedAt)
	case entity.SyncStatusStale:
		run.MarkStale(e.FinishedAt)
	default:
		run.MarkFailed(e.Err, e.FinishedAt)
		run.SnapshotVersion = e.Version
	}
	return run
}

// Subscribe registers fn for every later event and returns a function that
// removes it. fn runs on the goroutine that finished the operation, after the
// store lock is released, and must not block.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) emit(event Event) {
	s.subMu.Lock()
	subscribers := make([]func(Event), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subscribers = append(subscribers, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subscribers {
		fn(event)
	}
}
