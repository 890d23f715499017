package report

import (
	"time"

	"go.uber.org/zap"

	"techassist/internal/report/controller"
	"techassist/internal/report/usecase"
)

func NewModule(repo usecase.Repository, location *time.Location, currencyPrefix string, logger *zap.Logger) *controller.ReportController {
	uc := usecase.NewReportUseCase(repo, location, currencyPrefix, logger)
	return controller.NewReportController(uc, logger)
}
