package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/application/adapter"
	"github.com/finance-tracker/client/internal/domain/entity"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

const (
	defaultSyncRunLimit = 50
	maxSyncRunLimit     = 500
)

// SyncRunController handles the sync history endpoint.
type SyncRunController struct {
	repo adapter.SyncRunRepository
}

// NewSyncRunController creates a new sync run controller instance.
// A nil repository means sync history is disabled.
func NewSyncRunController(repo adapter.SyncRunRepository) *SyncRunController {
	return &SyncRunController{repo: repo}
}

// List handles GET /sync-runs requests. Optional query: resource, limit.
func (c *SyncRunController) List(ctx *gin.Context) {
	if c.repo == nil {
		respondError(ctx, domainerror.NewStoreError(
			domainerror.ErrCodeSyncHistory,
			"sync history is disabled",
			domainerror.ErrSyncHistoryFailed,
		))
		return
	}

	limit, err := intQuery(ctx, "limit", "")
	if err != nil {
		return
	}
	if limit <= 0 {
		limit = defaultSyncRunLimit
	}
	limit = min(limit, maxSyncRunLimit)

	var runs []*entity.SyncRun
	if resource := ctx.Query("resource"); resource != "" {
		runs, err = c.repo.FindByResource(ctx.Request.Context(), resource, limit)
	} else {
		runs, err = c.repo.FindRecent(ctx.Request.Context(), limit)
	}
	if err != nil {
		respondError(ctx, domainerror.NewStoreError(
			domainerror.ErrCodeSyncHistory,
			"failed to read sync history",
			err,
		))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSyncRunListResponse(runs))
}
