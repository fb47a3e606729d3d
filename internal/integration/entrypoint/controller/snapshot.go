package controller

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/application/store"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

const (
	// eventBuffer is how many store events a slow stream client may lag behind before events are dropped.
	eventBuffer = 64
	// heartbeatInterval keeps idle event streams open through proxies.
	heartbeatInterval = 15 * time.Second
)

// StateStore is the part of the store the snapshot endpoints drive.
type StateStore interface {
	Snapshot() store.Snapshot
	Refresh(ctx context.Context) error
	SetDateRange(ctx context.Context, r entity.DateRange) (entity.Stats, error)
	Subscribe(fn func(store.Event)) (unsubscribe func())
}

// SnapshotController handles store status, refresh, date range and event stream endpoints.
type SnapshotController struct {
	store StateStore
}

// NewSnapshotController creates a new snapshot controller instance.
func NewSnapshotController(store StateStore) *SnapshotController {
	return &SnapshotController{store: store}
}

// Get handles GET /snapshot requests.
func (c *SnapshotController) Get(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(c.store.Snapshot()))
}

// Refresh handles POST /refresh requests. Load failures are reported in the
// snapshot error field, so the response is the snapshot either way.
func (c *SnapshotController) Refresh(ctx *gin.Context) {
	if err := c.store.Refresh(ctx.Request.Context()); errors.Is(err, domainerror.ErrStoreClosed) {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(c.store.Snapshot()))
}

// SetDateRange handles PUT /date-range requests and reloads stats for the new range.
func (c *SnapshotController) SetDateRange(ctx *gin.Context) {
	var req dto.DateRangeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidDateFormat))
		return
	}

	if _, err := c.store.SetDateRange(ctx.Request.Context(), req.DateRange()); err != nil {
		var statsErr *domainerror.StatsError
		if errors.As(err, &statsErr) || errors.Is(err, domainerror.ErrStoreClosed) {
			respondError(ctx, err)
			return
		}
		// The range was stored and the failed reload is in the snapshot error.
	}

	ctx.JSON(http.StatusOK, dto.ToSnapshotResponse(c.store.Snapshot()))
}

// Events handles GET /events, streaming store events as server-sent events.
// The first event is the current snapshot.
func (c *SnapshotController) Events(ctx *gin.Context) {
	events := make(chan store.Event, eventBuffer)
	unsubscribe := c.store.Subscribe(func(e store.Event) {
		select {
		case events <- e:
		default:
		}
	})
	defer unsubscribe()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	ctx.Header("Cache-Control", "no-cache")
	ctx.Header("Connection", "keep-alive")
	ctx.Header("X-Accel-Buffering", "no")
	ctx.SSEvent("snapshot", dto.ToSnapshotResponse(c.store.Snapshot()))
	ctx.Writer.Flush()

	done := ctx.Request.Context().Done()
	ctx.Stream(func(io.Writer) bool {
		select {
		case <-done:
			return false
		case e := <-events:
			ctx.SSEvent("store", dto.ToEventResponse(e))
			return true
		case <-heartbeat.C:
			ctx.SSEvent("ping", gin.H{"time": time.Now().UTC()})
			return true
		}
	})
}
