package customer

import (
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/customer/controller"
	"techassist/internal/customer/repository"
	"techassist/internal/customer/usecase"
	"techassist/internal/recordstore"
)

func NewModule(store *recordstore.Store, cacheStore *cache.Store, logger *zap.Logger) *controller.CustomerController {
	repo := repository.NewMySQLRepository(store)
	uc := usecase.NewCustomerUseCase(repo, cacheStore, logger)
	return controller.NewCustomerController(uc, logger)
}
