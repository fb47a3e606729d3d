package controller

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/application/usecase/transaction"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

// TransactionController handles transaction endpoints.
type TransactionController struct {
	listUseCase   *transaction.ListTransactionsUseCase
	createUseCase *transaction.CreateTransactionUseCase
	updateUseCase *transaction.UpdateTransactionUseCase
	deleteUseCase *transaction.DeleteTransactionUseCase
	importUseCase *transaction.ImportTransactionsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	listUseCase *transaction.ListTransactionsUseCase,
	createUseCase *transaction.CreateTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	importUseCase *transaction.ImportTransactionsUseCase,
) *TransactionController {
	return &TransactionController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
		importUseCase: importUseCase,
	}
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	var query dto.ListTransactionsQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBindError(ctx, err, "")
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), transaction.ListTransactionsInput{
		Filter:   query.FilterSpec(),
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output))
}

// Create handles POST /transactions requests.
func (c *TransactionController) Create(ctx *gin.Context) {
	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), transaction.CreateTransactionInput{
		Date:        req.ParsedDate(),
		Amount:      req.Amount,
		Description: req.Description,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToTransactionResponse(*output.Transaction))
}

// Update handles PUT /transactions/:id requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	var req dto.TransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err, string(domainerror.ErrCodeMissingTransactionFields))
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		TransactionID: id,
		Date:          req.ParsedDate(),
		Amount:        req.Amount,
		Description:   req.Description,
		CategoryID:    req.CategoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(*output.Transaction))
}

// Delete handles DELETE /transactions/:id requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	id, ok := parseTransactionID(ctx)
	if !ok {
		return
	}

	if err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{TransactionID: id}); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// Import handles POST /imports/file requests with a multipart "file" field.
func (c *TransactionController) Import(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "A statement file is required in the \"file\" field",
			Code:  string(domainerror.ErrCodeInvalidImportFile),
		})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(ctx, err)
		return
	}
	defer file.Close()

	// One byte past the limit is enough for the use case to reject the file.
	content, err := io.ReadAll(io.LimitReader(file, transaction.MaxImportFileSize+1))
	if err != nil {
		respondError(ctx, err)
		return
	}

	output, err := c.importUseCase.Execute(ctx.Request.Context(), transaction.ImportTransactionsInput{
		FileName: header.Filename,
		Content:  content,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToImportResponse(output))
}

func parseTransactionID(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid transaction ID format",
			Code:  string(domainerror.ErrCodeInvalidTransactionID),
		})
		return 0, false
	}
	return id, true
}
