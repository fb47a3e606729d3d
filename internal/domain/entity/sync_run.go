package entity

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus represents the outcome of a store operation against the finance API.
type SyncStatus string

const (
	SyncStatusSucceeded SyncStatus = "succeeded"
	SyncStatusFailed    SyncStatus = "failed"
	SyncStatusStale     SyncStatus = "stale" // Response discarded because a newer request was issued
)

// SyncRun records one load or mutation performed by the state store.
type SyncRun struct {
	ID              uuid.UUID
	Resource        string
	Operation       string
	Status          SyncStatus
	ItemCount       int
	LastError       string
	SnapshotVersion uint64
	StartedAt       time.Time
	FinishedAt      time.Time
}

// NewSyncRun creates a SyncRun that started at the given time.
func NewSyncRun(resource, operation string, startedAt time.Time) *SyncRun {
	return &SyncRun{
		ID:        uuid.New(),
		Resource:  resource,
		Operation: operation,
		StartedAt: startedAt.UTC(),
	}
}

// MarkSucceeded marks the run as successful.
func (r *SyncRun) MarkSucceeded(itemCount int, version uint64, finishedAt time.Time) {
	r.Status = SyncStatusSucceeded
	r.ItemCount = itemCount
	r.SnapshotVersion = version
	r.FinishedAt = finishedAt.UTC()
}

// MarkFailed marks the run as failed with the given error.
func (r *SyncRun) MarkFailed(err error, finishedAt time.Time) {
	r.Status = SyncStatusFailed
	if err != nil {
		r.LastError = err.Error()
	}
	r.FinishedAt = finishedAt.UTC()
}

// MarkStale marks the run as superseded by a newer request.
func (r *SyncRun) MarkStale(finishedAt time.Time) {
	r.Status = SyncStatusStale
	r.FinishedAt = finishedAt.UTC()
}

// Duration returns how long the run took.
func (r *SyncRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
