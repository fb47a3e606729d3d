// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/persistence/model"
)

// syncRunRepository implements the adapter.SyncRunRepository interface.
type syncRunRepository struct {
	db *gorm.DB
}

// NewSyncRunRepository creates a new sync run repository instance.
func NewSyncRunRepository(db *gorm.DB) adapter.SyncRunRepository {
	return &syncRunRepository{
		db: db,
	}
}

// CreateBatch inserts runs in one statement.
func (r *syncRunRepository) CreateBatch(ctx context.Context, runs []*entity.SyncRun) error {
	if len(runs) == 0 {
		return nil
	}

	models := make([]*model.SyncRunModel, len(runs))
	for i, run := range runs {
		models[i] = model.SyncRunModelFromEntity(run)
	}

	if err := r.db.WithContext(ctx).Create(&models).Error; err != nil {
		return domainerror.NewStoreError(
			domainerror.ErrCodeSyncHistory,
			"failed to store sync runs",
			fmt.Errorf("%w: %v", domainerror.ErrSyncHistoryFailed, err),
		)
	}
	return nil
}

// FindRecent retrieves the latest runs, newest first.
func (r *syncRunRepository) FindRecent(ctx context.Context, limit int) ([]*entity.SyncRun, error) {
	var models []model.SyncRunModel
	result := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	return toSyncRuns(models), nil
}

// FindByResource retrieves the latest runs of one resource, newest first.
func (r *syncRunRepository) FindByResource(ctx context.Context, resource string, limit int) ([]*entity.SyncRun, error) {
	var models []model.SyncRunModel
	result := r.db.WithContext(ctx).
		Where("resource = ?", resource).
		Order("started_at DESC").
		Limit(limit).
		Find(&models)

	if result.Error != nil {
		return nil, result.Error
	}

	return toSyncRuns(models), nil
}

// DeleteOlderThan removes runs started before cutoff.
func (r *syncRunRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("started_at < ?", cutoff.UTC()).
		Delete(&model.SyncRunModel{})

	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func toSyncRuns(models []model.SyncRunModel) []*entity.SyncRun {
	runs := make([]*entity.SyncRun, len(models))
	for i := range models {
		runs[i] = models[i].ToEntity()
	}
	return runs
}
