// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "github.com/finance-tracker/client/internal/domain/entity"

// SnapshotReader exposes copies of the cached collections that derived views are computed from.
type SnapshotReader interface {
	// Transactions returns the cached transactions in the order the API delivered them.
	Transactions() []entity.Transaction

	// Categories returns the cached categories.
	Categories() []entity.Category

	// Stats returns the stats loaded for the current date range.
	Stats() entity.Stats

	// DateRange returns the current stats date range.
	DateRange() entity.DateRange
}
