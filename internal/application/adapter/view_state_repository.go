// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/domain/entity"
)

// ViewStateRepository defines the interface for transaction view persistence.
type ViewStateRepository interface {
	// Save creates or replaces a view.
	Save(ctx context.Context, view *entity.TransactionView) error

	// FindByID retrieves a view by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.TransactionView, error)

	// Delete removes a view.
	Delete(ctx context.Context, id uuid.UUID) error
}
