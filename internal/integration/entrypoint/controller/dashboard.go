package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/finance-tracker/client/internal/application/usecase/dashboard"
	domainerror "github.com/finance-tracker/client/internal/domain/error"
	"github.com/finance-tracker/client/internal/integration/entrypoint/dto"
)

// recentTransactionsLimit is the number of transactions shown on the dashboard.
const recentTransactionsLimit = 5

// DashboardController handles dashboard and analysis endpoints.
type DashboardController struct {
	summaryUseCase  *dashboard.GetSummaryUseCase
	analysisUseCase *dashboard.GetSpendingAnalysisUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(
	summaryUseCase *dashboard.GetSummaryUseCase,
	analysisUseCase *dashboard.GetSpendingAnalysisUseCase,
) *DashboardController {
	return &DashboardController{
		summaryUseCase:  summaryUseCase,
		analysisUseCase: analysisUseCase,
	}
}

// GetSummary handles GET /dashboard requests.
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), dashboard.GetSummaryInput{
		RecentLimit: recentTransactionsLimit,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(output))
}

// GetAnalysis handles GET /analysis requests.
// Optional query parameters: top (number of top categories) and months (recent periods).
func (c *DashboardController) GetAnalysis(ctx *gin.Context) {
	var input dashboard.GetSpendingAnalysisInput
	var err error
	if input.TopN, err = intQuery(ctx, "top", string(domainerror.ErrCodeInvalidTrendsQuery)); err != nil {
		return
	}
	if input.MonthlyPeriods, err = intQuery(ctx, "months", string(domainerror.ErrCodeInvalidTrendsQuery)); err != nil {
		return
	}

	output, err := c.analysisUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAnalysisResponse(output))
}

// intQuery parses an optional integer query parameter, answering 400 when it is malformed.
func intQuery(ctx *gin.Context, key, code string) (int, error) {
	raw := ctx.Query(key)
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid " + key + " parameter",
			Code:  code,
		})
		return 0, err
	}
	return value, nil
}
