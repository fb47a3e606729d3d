// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
	"github.com/finance-tracker/client/internal/integration/entrypoint/validation"
)

// respondError writes the HTTP response for any error returned by a use case or the store.
func respondError(ctx *gin.Context, err error) {
	var (
		txnErr      *domainerror.TransactionError
		categoryErr *domainerror.CategoryError
		statsErr    *domainerror.StatsError
		storeErr    *domainerror.StoreError
		remoteErr   *domainerror.RemoteError
	)

	switch {
	case errors.As(err, &txnErr):
		ctx.JSON(statusForTransactionError(txnErr.Code), dto.ErrorResponse{Error: txnErr.Message, Code: string(txnErr.Code)})
	case errors.As(err, &categoryErr):
		ctx.JSON(statusForCategoryError(categoryErr.Code), dto.ErrorResponse{Error: categoryErr.Message, Code: string(categoryErr.Code)})
	case errors.As(err, &statsErr):
		ctx.JSON(statusForStatsError(statsErr.Code), dto.ErrorResponse{Error: statsErr.Message, Code: string(statsErr.Code)})
	case errors.As(err, &storeErr):
		ctx.JSON(statusForStoreError(storeErr.Code), dto.ErrorResponse{Error: storeErr.Message, Code: string(storeErr.Code)})
	case errors.As(err, &remoteErr):
		ctx.JSON(statusForRemoteError(remoteErr), dto.ErrorResponse{Error: remoteErr.Message, Code: string(remoteErr.Code)})
	default:
		slog.Error("Unhandled request error", "path", ctx.FullPath(), "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "An internal error occurred",
		})
	}
}

// respondBindError answers 400 for a request that failed binding or validation.
func respondBindError(ctx *gin.Context, err error, code string) {
	ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Error:   "Invalid request",
		Code:    code,
		Details: validation.Describe(err),
	})
}

func statusForTransactionError(code domainerror.TransactionErrorCode) int {
	switch code {
	case domainerror.ErrCodeTransactionNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeSignMismatch:
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func statusForCategoryError(code domainerror.CategoryErrorCode) int {
	switch code {
	case domainerror.ErrCodeCategoryNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeCategoryNameExists,
		domainerror.ErrCodeDefaultCategoryDelete:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func statusForStatsError(code domainerror.StatsErrorCode) int {
	if code == domainerror.ErrCodeStatsInternalError {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func statusForStoreError(code domainerror.StoreErrorCode) int {
	switch code {
	case domainerror.ErrCodeViewNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidViewID:
		return http.StatusBadRequest
	case domainerror.ErrCodeRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeStoreClosed,
		domainerror.ErrCodeSyncHistory:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// statusForRemoteError passes client errors of the finance API through and
// reports its own failures as gateway errors.
func statusForRemoteError(err *domainerror.RemoteError) int {
	switch err.Code {
	case domainerror.ErrCodeRemoteNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeRemoteRateLimited:
		return http.StatusTooManyRequests
	case domainerror.ErrCodeRemoteRejected:
		if err.Status >= 400 && err.Status < 500 {
			return err.Status
		}
		return http.StatusBadRequest
	case domainerror.ErrCodeRemoteTimeout:
		return http.StatusGatewayTimeout
	case domainerror.ErrCodeRemoteUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
