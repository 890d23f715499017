package dashboard

import (
	"time"

	"go.uber.org/zap"

	"techassist/internal/dashboard/controller"
	"techassist/internal/dashboard/repository"
	"techassist/internal/dashboard/usecase"
	"techassist/internal/recordstore"
)

// NewModule wires the dashboard. The repository is returned for the report
// module, which aggregates the same projection over a chosen month.
func NewModule(store *recordstore.Store, location *time.Location, currencyPrefix string, logger *zap.Logger) (*controller.DashboardController, *repository.MySQLRepository) {
	repo := repository.NewMySQLRepository(store, logger)
	uc := usecase.NewDashboardUseCase(repo, location, currencyPrefix, logger)
	return controller.NewDashboardController(uc, logger), repo
}
