package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/finance-tracker/client/internal/application/usecase/transaction"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

// ViewController handles server-held transaction view endpoints.
type ViewController struct {
	createUseCase *transaction.CreateViewUseCase
	getUseCase    *transaction.GetViewUseCase
	updateUseCase *transaction.UpdateViewUseCase
	deleteUseCase *transaction.DeleteViewUseCase
}

// NewViewController creates a new view controller instance.
func NewViewController(
	createUseCase *transaction.CreateViewUseCase,
	getUseCase *transaction.GetViewUseCase,
	updateUseCase *transaction.UpdateViewUseCase,
	deleteUseCase *transaction.DeleteViewUseCase,
) *ViewController {
	return &ViewController{
		createUseCase: createUseCase,
		getUseCase:    getUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// Create handles POST /views requests.
func (c *ViewController) Create(ctx *gin.Context) {
	var req dto.ViewFilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, "")
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateViewInput{
		Filter: req.FilterSpec(),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToViewResponse(output))
}

// Get handles GET /views/:id requests.
func (c *ViewController) Get(ctx *gin.Context) {
	viewID, ok := parseViewID(ctx)
	if !ok {
		return
	}

	output, err := c.getUseCase.Execute(ctx.Request.Context(), transaction.GetViewInput{ViewID: viewID})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToViewResponse(output))
}

// UpdateFilter handles PUT /views/:id/filter requests. A changed filter resets the view to page 1.
func (c *ViewController) UpdateFilter(ctx *gin.Context) {
	viewID, ok := parseViewID(ctx)
	if !ok {
		return
	}

	var req dto.ViewFilterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, "")
		return
	}

	filter := req.FilterSpec()
	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateViewInput{
		ViewID: viewID,
		Filter: &filter,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToViewResponse(output))
}

// UpdatePage handles PUT /views/:id/page requests.
func (c *ViewController) UpdatePage(ctx *gin.Context) {
	viewID, ok := parseViewID(ctx)
	if !ok {
		return
	}

	var req dto.ViewPageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidPage))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateViewInput{
		ViewID: viewID,
		Page:   &req.Page,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToViewResponse(output))
}

// Delete handles DELETE /views/:id requests.
func (c *ViewController) Delete(ctx *gin.Context) {
	viewID, ok := parseViewID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), viewID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseViewID(ctx *gin.Context) (uuid.UUID, bool) {
	viewID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid view ID format",
			Code:  string(domainerror.ErrCodeInvalidViewID),
		})
		return uuid.Nil, false
	}
	return viewID, true
}
