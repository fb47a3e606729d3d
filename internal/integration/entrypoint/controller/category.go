package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/application/usecase/category"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

// CategoryController handles category endpoints.
type CategoryController struct {
	listUseCase   *category.ListCategoriesUseCase
	createUseCase *category.CreateCategoryUseCase
	updateUseCase *category.UpdateCategoryUseCase
	deleteUseCase *category.DeleteCategoryUseCase
}

// NewCategoryController creates a new category controller instance.
func NewCategoryController(
	listUseCase *category.ListCategoriesUseCase,
	createUseCase *category.CreateCategoryUseCase,
	updateUseCase *category.UpdateCategoryUseCase,
	deleteUseCase *category.DeleteCategoryUseCase,
) *CategoryController {
	return &CategoryController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /categories requests.
// Pass include_uncategorized=true to add a row for transactions without a category.
func (c *CategoryController) List(ctx *gin.Context) {
	includeUncategorized, _ := strconv.ParseBool(ctx.Query("include_uncategorized"))

	output, err := c.listUseCase.Execute(ctx.Request.Context(), category.ListCategoriesInput{
		IncludeUncategorized: includeUncategorized,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryListResponse(output))
}

// Create handles POST /categories requests.
func (c *CategoryController) Create(ctx *gin.Context) {
	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), category.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCategoryResponse(*output.Category))
}

// Update handles PUT /categories/:id requests.
func (c *CategoryController) Update(ctx *gin.Context) {
	id, ok := parseCategoryID(ctx)
	if !ok {
		return
	}

	var req dto.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingCategoryFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), category.UpdateCategoryInput{
		CategoryID:  id,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCategoryResponse(*output.Category))
}

// Delete handles DELETE /categories/:id requests.
func (c *CategoryController) Delete(ctx *gin.Context) {
	id, ok := parseCategoryID(ctx)
	if !ok {
		return
	}

	var query dto.DeleteCategoryQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeInvalidReassignTarget))
		return
	}

	err := c.deleteUseCase.Execute(ctx.Request.Context(), category.DeleteCategoryInput{
		CategoryID: id,
		ReassignTo: query.ReassignToID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func parseCategoryID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid category ID format",
			Code:  string(domainerror.ErrCodeInvalidCategoryID),
		})
		return 0, false
	}
	return id, true
}
