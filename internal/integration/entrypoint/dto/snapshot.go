package dto

import (
	"time"

	"github.com/finance-tracker/client/internal/application/store"
	"github.com/finance-tracker/client/internal/domain/entity"
)

// LoadingResponse holds the per-resource loading flags.
type LoadingResponse struct {
	Transactions bool `json:"transactions"`
	Categories   bool `json:"categories"`
	Importing    bool `json:"importing"`
	Stats        bool `json:"stats"`
}

// SnapshotResponse represents the store status.
type SnapshotResponse struct {
	Initialized      bool              `json:"initialized"`
	Version          uint64            `json:"version"`
	Loading          LoadingResponse   `json:"loading"`
	Error            string            `json:"error,omitempty"`
	TransactionCount int               `json:"transaction_count"`
	CategoryCount    int               `json:"category_count"`
	DateRange        DateRangeResponse `json:"date_range"`
}

// ToSnapshotResponse converts a store Snapshot.
func ToSnapshotResponse(s store.Snapshot) SnapshotResponse {
	return SnapshotResponse{
		Initialized: s.Initialized,
		Version:     s.Version,
		Loading: LoadingResponse{
			Transactions: s.Loading.Transactions,
			Categories:   s.Loading.Categories,
			Importing:    s.Loading.Importing,
			Stats:        s.Loading.Stats,
		},
		Error:            s.Error,
		TransactionCount: len(s.Transactions),
		CategoryCount:    len(s.Categories),
		DateRange:        ToDateRangeResponse(s.DateRange),
	}
}

// EventResponse is the payload of one server-sent store event.
type EventResponse struct {
	Resource   string    `json:"resource"`
	Operation  string    `json:"operation"`
	Status     string    `json:"status"`
	ItemCount  int       `json:"item_count"`
	Error      string    `json:"error,omitempty"`
	Version    uint64    `json:"version"`
	FinishedAt time.Time `json:"finished_at"`
}

// ToEventResponse converts a store Event.
func ToEventResponse(e store.Event) EventResponse {
	response := EventResponse{
		Resource:   e.Resource,
		Operation:  e.Operation,
		Status:     string(e.Status),
		ItemCount:  e.ItemCount,
		Version:    e.Version,
		FinishedAt: e.FinishedAt,
	}
	if e.Err != nil {
		response.Error = e.Err.Error()
	}
	return response
}

// SyncRunResponse represents one recorded store operation.
type SyncRunResponse struct {
	ID              string    `json:"id"`
	Resource        string    `json:"resource"`
	Operation       string    `json:"operation"`
	Status          string    `json:"status"`
	ItemCount       int       `json:"item_count"`
	LastError       string    `json:"last_error,omitempty"`
	SnapshotVersion uint64    `json:"snapshot_version"`
	DurationMillis  int64     `json:"duration_ms"`
	StartedAt       time.Time `json:"started_at"`
}

// SyncRunListResponse represents the response of GET /sync-runs.
type SyncRunListResponse struct {
	Runs []SyncRunResponse `json:"runs"`
}

// ToSyncRunListResponse converts domain SyncRuns.
func ToSyncRunListResponse(runs []*entity.SyncRun) SyncRunListResponse {
	responses := make([]SyncRunResponse, len(runs))
	for i, run := range runs {
		responses[i] = SyncRunResponse{
			ID:              run.ID.String(),
			Resource:        run.Resource,
			Operation:       run.Operation,
			Status:          string(run.Status),
			ItemCount:       run.ItemCount,
			LastError:       run.LastError,
			SnapshotVersion: run.SnapshotVersion,
			DurationMillis:  run.Duration().Milliseconds(),
			StartedAt:       run.StartedAt,
		}
	}
	return SyncRunListResponse{Runs: responses}
}
