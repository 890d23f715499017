package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"techassist/internal/dashboard/usecase"
	"techassist/internal/infrastructure/httpresponse"
)

type DashboardUseCase interface {
	GetDashboard(ctx context.Context) (*usecase.Dashboard, error)
}

type DashboardController struct {
	useCase DashboardUseCase
	logger  *zap.Logger
}

func NewDashboardController(useCase DashboardUseCase, logger *zap.Logger) *DashboardController {
	return &DashboardController{useCase: useCase, logger: logger}
}

func (c *DashboardController) Get(w http.ResponseWriter, r *http.Request) {
	dashboard, err := c.useCase.GetDashboard(r.Context())
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading dashboard", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, dashboard)
}
