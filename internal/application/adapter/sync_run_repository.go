// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// SyncRunRepository defines the interface for sync history persistence operations.
type SyncRunRepository interface {
	// CreateBatch stores several runs in one write.
	CreateBatch(ctx context.Context, runs []*entity.SyncRun) error

	// FindRecent retrieves the latest runs, newest first.
	FindRecent(ctx context.Context, limit int) ([]*entity.SyncRun, error)

	// FindByResource retrieves the latest runs for one resource, newest first.
	FindByResource(ctx context.Context, resource string, limit int) ([]*entity.SyncRun, error)

	// DeleteOlderThan removes runs that started before the cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
