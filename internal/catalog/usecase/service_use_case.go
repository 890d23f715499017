package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Service, error)
	FindByID(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, s domain.Service) (int64, error)
	Update(ctx context.Context, s domain.Service) error
	Delete(ctx context.Context, id int64) error
}

type ServiceInput struct {
	Name        string
	Description *string
	Price       decimal.Decimal
}

// ServiceUseCase manages the catalogue of billable services.
type ServiceUseCase struct {
	repo   Repository
	cache  *cache.Store
	logger *zap.Logger
}

func NewServiceUseCase(repo Repository, cacheStore *cache.Store, logger *zap.Logger) *ServiceUseCase {
	return &ServiceUseCase{repo: repo, cache: cacheStore, logger: logger}
}

func (uc *ServiceUseCase) List(ctx context.Context) ([]domain.Service, error) {
	return cache.Fetch(ctx, uc.cache, string(recordstore.Services), "list", uc.repo.List)
}

func (uc *ServiceUseCase) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *ServiceUseCase) Create(ctx context.Context, in ServiceInput) (*domain.Service, error) {
	s, err := validate(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, s)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	uc.logger.Info("service created", zap.Int64("serviceId", id), zap.String("price", s.Price.StringFixed(2)))
	return uc.repo.FindByID(ctx, id)
}

// Update changes a catalogue entry. Prices already copied into order items
// are not affected.
func (uc *ServiceUseCase) Update(ctx context.Context, id int64, in ServiceInput) (*domain.Service, error) {
	s, err := validate(in)
	if err != nil {
		return nil, err
	}
	s.ID = id

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return uc.repo.FindByID(ctx, id)
}

func (uc *ServiceUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *ServiceUseCase) invalidate(ctx context.Context) {
	uc.cache.Invalidate(ctx, string(recordstore.Services))
	uc.cache.Invalidate(ctx, string(recordstore.OrderDetailed))
}

func validate(in ServiceInput) (domain.Service, error) {
	s := domain.Service{
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
	}
	if in.Description != nil {
		if d := strings.TrimSpace(*in.Description); d != "" {
			s.Description = &d
		}
	}

	var details []apperrors.ValidationDetail
	if s.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	}
	if s.Price.IsNegative() {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must be non-negative"})
	}
	if !s.Price.Equal(s.Price.Round(2)) {
		details = append(details, apperrors.ValidationDetail{Field: "price", Message: "price must have at most two decimal places"})
	}
	if len(details) > 0 {
		return domain.Service{}, apperrors.NewValidationError("validation failed", details...)
	}

	return s, nil
}
