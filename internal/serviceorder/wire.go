package serviceorder

import (
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/recordstore"
	"techassist/internal/serviceorder/controller"
	"techassist/internal/serviceorder/repository"
	"techassist/internal/serviceorder/usecase"
)

func NewModule(store *recordstore.Store, catalog usecase.ServiceCatalog, cacheStore *cache.Store, logger *zap.Logger) *controller.OrderController {
	repo := repository.NewMySQLOrderRepository(store, logger)
	uc := usecase.NewOrderUseCase(repo, catalog, cacheStore, logger)
	return controller.NewOrderController(uc, logger)
}
