package technician

import (
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/recordstore"
	"techassist/internal/technician/controller"
	"techassist/internal/technician/repository"
	"techassist/internal/technician/usecase"
)

func NewModule(store *recordstore.Store, cacheStore *cache.Store, logger *zap.Logger) *controller.TechnicianController {
	repo := repository.NewMySQLRepository(store)
	uc := usecase.NewTechnicianUseCase(repo, cacheStore, logger)
	return controller.NewTechnicianController(uc, logger)
}
