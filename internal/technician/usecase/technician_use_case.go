package usecase

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Technician, error)
	FindByID(ctx context.Context, id int64) (*domain.Technician, error)
	Create(ctx context.Context, t domain.Technician) (int64, error)
	Update(ctx context.Context, t domain.Technician) error
	Delete(ctx context.Context, id int64) error
}

type TechnicianInput struct {
	Name      string
	Specialty string
}

type TechnicianUseCase struct {
	repo   Repository
	cache  *cache.Store
	logger *zap.Logger
}

func NewTechnicianUseCase(repo Repository, cacheStore *cache.Store, logger *zap.Logger) *TechnicianUseCase {
	return &TechnicianUseCase{repo: repo, cache: cacheStore, logger: logger}
}

func (uc *TechnicianUseCase) List(ctx context.Context) ([]domain.Technician, error) {
	return cache.Fetch(ctx, uc.cache, string(recordstore.Technicians), "list", uc.repo.List)
}

func (uc *TechnicianUseCase) Get(ctx context.Context, id int64) (*domain.Technician, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *TechnicianUseCase) Create(ctx context.Context, in TechnicianInput) (*domain.Technician, error) {
	t, err := validate(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	uc.logger.Info("technician created", zap.Int64("technicianId", id))
	return uc.repo.FindByID(ctx, id)
}

func (uc *TechnicianUseCase) Update(ctx context.Context, id int64, in TechnicianInput) (*domain.Technician, error) {
	t, err := validate(in)
	if err != nil {
		return nil, err
	}
	t.ID = id

	if err := uc.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return uc.repo.FindByID(ctx, id)
}

// Delete removes a technician. Orders assigned to them keep existing with no
// technician.
func (uc *TechnicianUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *TechnicianUseCase) invalidate(ctx context.Context) {
	uc.cache.Invalidate(ctx, string(recordstore.Technicians))
	uc.cache.Invalidate(ctx, string(recordstore.OrderDetailed))
}

func validate(in TechnicianInput) (domain.Technician, error) {
	t := domain.Technician{
		Name:      strings.TrimSpace(in.Name),
		Specialty: strings.TrimSpace(in.Specialty),
	}

	var details []apperrors.ValidationDetail
	if t.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if t.Specialty == "" {
		details = append(details, apperrors.ValidationDetail{Field: "specialty", Message: "specialty is required"})
	}
	if len(details) > 0 {
		return domain.Technician{}, apperrors.NewValidationError("validation failed", details...)
	}

	return t, nil
}
