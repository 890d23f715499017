package catalog

import (
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/catalog/controller"
	"techassist/internal/catalog/repository"
	"techassist/internal/catalog/usecase"
	"techassist/internal/recordstore"
)

// NewModule wires the service catalogue. The repository is returned as well
// so order creation can resolve service prices.
func NewModule(store *recordstore.Store, cacheStore *cache.Store, logger *zap.Logger) (*controller.ServiceController, *repository.MySQLRepository) {
	repo := repository.NewMySQLRepository(store)
	uc := usecase.NewServiceUseCase(repo, cacheStore, logger)
	return controller.NewServiceController(uc, logger), repo
}
