package controller

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	apperrors "techassist/internal/errors"
	"techassist/internal/infrastructure/httpresponse"
	"techassist/internal/report/usecase"
)

type ReportUseCase interface {
	CurrentPeriod() (int, int)
	MonthlyReport(ctx context.Context, year, month int) (*usecase.MonthlyReport, error)
}

type ReportController struct {
	useCase ReportUseCase
	logger  *zap.Logger
}

func NewReportController(useCase ReportUseCase, logger *zap.Logger) *ReportController {
	return &ReportController{useCase: useCase, logger: logger}
}

// MonthlyRevenue serves the report for ?year=&month=. Missing parameters
// default to the current period.
func (c *ReportController) MonthlyRevenue(w http.ResponseWriter, r *http.Request) {
	year, month := c.useCase.CurrentPeriod()

	var details []apperrors.ValidationDetail
	if raw := r.URL.Query().Get("year"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{Field: "year", Message: "year must be an integer"})
		}
		year = v
	}
	if raw := r.URL.Query().Get("month"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			details = append(details, apperrors.ValidationDetail{Field: "month", Message: "month must be an integer"})
		}
		month = v
	}
	if len(details) > 0 {
		httpresponse.ValidationError(w, c.logger, "invalid report period", details...)
		return
	}

	report, err := c.useCase.MonthlyReport(r.Context(), year, month)
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading report", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, report)
}
