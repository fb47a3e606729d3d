// Package cache implements repositories backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
)

const viewKeyPrefix = "view:"

// viewRecord is the JSON shape stored under each view key.
type viewRecord struct {
	ID         uuid.UUID  `json:"id"`
	Search     string     `json:"search,omitempty"`
	CategoryID *int64     `json:"category_id,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	Type       string     `json:"type,omitempty"`
	Page       int        `json:"page"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func recordFromView(v *entity.TransactionView) viewRecord {
	return viewRecord{
		ID:         v.ID,
		Search:     v.Filter.SearchTerm,
		CategoryID: v.Filter.CategoryID,
		StartDate:  v.Filter.StartDate,
		EndDate:    v.Filter.EndDate,
		Type:       string(v.Filter.Type),
		Page:       v.Page,
		UpdatedAt:  v.UpdatedAt.UTC(),
	}
}

func (r viewRecord) toEntity() *entity.TransactionView {
	return &entity.TransactionView{
		ID: r.ID,
		Filter: entity.FilterSpec{
			SearchTerm: r.Search,
			CategoryID: r.CategoryID,
			StartDate:  r.StartDate,
			EndDate:    r.EndDate,
			Type:       entity.TypeFilter(r.Type),
		},
		Page:      r.Page,
		UpdatedAt: r.UpdatedAt,
	}
}

// viewStateRepository implements the adapter.ViewStateRepository interface.
type viewStateRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewViewStateRepository creates a view repository. Views expire ttl after their last save;
// a zero ttl keeps them until deleted.
func NewViewStateRepository(client *redis.Client, ttl time.Duration) adapter.ViewStateRepository {
	return &viewStateRepository{
		client: client,
		ttl:    ttl,
	}
}

func viewKey(id uuid.UUID) string {
	return viewKeyPrefix + id.String()
}

// Save creates or replaces a view and refreshes its expiry.
func (r *viewStateRepository) Save(ctx context.Context, view *entity.TransactionView) error {
	payload, err := json.Marshal(recordFromView(view))
	if err != nil {
		return fmt.Errorf("failed to encode view: %w", err)
	}

	if err := r.client.Set(ctx, viewKey(view.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save view: %w", err)
	}
	return nil
}

// FindByID retrieves a view by its ID.
func (r *viewStateRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionView, error) {
	payload, err := r.client.Get(ctx, viewKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domainerror.NewStoreError(domainerror.ErrCodeViewNotFound, "view not found", domainerror.ErrViewNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load view: %w", err)
	}

	var record viewRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to decode view: %w", err)
	}
	return record.toEntity(), nil
}

// Delete removes a view. Deleting a missing view reports ErrViewNotFound.
func (r *viewStateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	removed, err := r.client.Del(ctx, viewKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete view: %w", err)
	}
	if removed == 0 {
		return domainerror.NewStoreError(domainerror.ErrCodeViewNotFound, "view not found", domainerror.ErrViewNotFound)
	}
	return nil
}
