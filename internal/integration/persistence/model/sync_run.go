// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// SyncRunModel represents the sync_runs table in the database.
type SyncRunModel struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Resource        string    `gorm:"type:varchar(30);not null;index:idx_sync_runs_resource_started"`
	Operation       string    `gorm:"type:varchar(30);not null"`
	Status          string    `gorm:"type:varchar(20);not null"`
	ItemCount       int       `gorm:"not null;default:0"`
	LastError       string    `gorm:"type:text"`
	SnapshotVersion uint64    `gorm:"not null;default:0"`
	DurationMillis  int64     `gorm:"not null;default:0"`
	StartedAt       time.Time `gorm:"not null;index:idx_sync_runs_resource_started"`
	FinishedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for the SyncRunModel.
func (SyncRunModel) TableName() string {
	return "sync_runs"
}

// ToEntity converts a SyncRunModel to a domain SyncRun entity.
func (m *SyncRunModel) ToEntity() *entity.SyncRun {
	return &entity.SyncRun{
		ID:              m.ID,
		Resource:        m.Resource,
		Operation:       m.Operation,
		Status:          entity.SyncStatus(m.Status),
		ItemCount:       m.ItemCount,
		LastError:       m.LastError,
		SnapshotVersion: m.SnapshotVersion,
		StartedAt:       m.StartedAt.UTC(),
		FinishedAt:      m.FinishedAt.UTC(),
	}
}

// SyncRunModelFromEntity creates a SyncRunModel from a domain SyncRun entity.
func SyncRunModelFromEntity(run *entity.SyncRun) *SyncRunModel {
	return &SyncRunModel{
		ID:              run.ID,
		Resource:        run.Resource,
		Operation:       run.Operation,
		Status:          string(run.Status),
		ItemCount:       run.ItemCount,
		LastError:       run.LastError,
		SnapshotVersion: run.SnapshotVersion,
		DurationMillis:  run.Duration().Milliseconds(),
		StartedAt:       run.StartedAt,
		FinishedAt:      run.FinishedAt,
	}
}
