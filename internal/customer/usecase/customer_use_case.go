package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Customer, error)
	FindByID(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (int64, error)
	Update(ctx context.Context, c domain.Customer) error
	Delete(ctx context.Context, id int64) error
}

type CustomerInput struct {
	Name    string
	Phone   string
	Email   *string
	Address *string
}

type CustomerUseCase struct {
	repo   Repository
	cache  *cache.Store
	logger *zap.Logger
}

func NewCustomerUseCase(repo Repository, cacheStore *cache.Store, logger *zap.Logger) *CustomerUseCase {
	return &CustomerUseCase{
		repo:   repo,
		cache:  cacheStore,
		logger: logger,
	}
}

func (uc *CustomerUseCase) List(ctx context.Context) ([]domain.Customer, error) {
	return cache.Fetch(ctx, uc.cache, string(recordstore.Customers), "list", uc.repo.List)
}

func (uc *CustomerUseCase) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	return uc.repo.FindByID(ctx, id)
}

func (uc *CustomerUseCase) Create(ctx context.Context, in CustomerInput) (*domain.Customer, error) {
	c, err := normalize(in)
	if err != nil {
		return nil, err
	}

	id, err := uc.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	uc.logger.Info("customer created", zap.Int64("customerId", id))
	return uc.repo.FindByID(ctx, id)
}

func (uc *CustomerUseCase) Update(ctx context.Context, id int64, in CustomerInput) (*domain.Customer, error) {
	c, err := normalize(in)
	if err != nil {
		return nil, err
	}
	c.ID = id

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	return uc.repo.FindByID(ctx, id)
}

func (uc *CustomerUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)

	uc.logger.Info("customer deleted", zap.Int64("customerId", id))
	return nil
}

// invalidate drops cached customer lists and the order views that embed
// customer names.
func (uc *CustomerUseCase) invalidate(ctx context.Context) {
	uc.cache.Invalidate(ctx, string(recordstore.Customers))
	uc.cache.Invalidate(ctx, string(recordstore.OrderDetailed))
}

func normalize(in CustomerInput) (domain.Customer, error) {
	c := domain.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   optional(in.Email),
		Address: optional(in.Address),
	}

	var details []apperrors.ValidationDetail
	if c.Name == "" {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name is required"})
	} else if len(c.Name) > 150 {
		details = append(details, apperrors.ValidationDetail{Field: "name", Message: "name must be at most 150 characters"})
	}
	if c.Phone == "" {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone is required"})
	} else if len(c.Phone) > 30 {
		details = append(details, apperrors.ValidationDetail{Field: "phone", Message: "phone must be at most 30 characters"})
	}
	if c.Email != nil && !strings.Contains(*c.Email, "@") {
		details = append(details, apperrors.ValidationDetail{Field: "email", Message: "email must be a valid address"})
	}

	if len(details) > 0 {
		return domain.Customer{}, apperrors.NewValidationError(fmt.Sprintf("invalid customer: %s", details[0].Message), details...)
	}

	return c, nil
}

// optional trims s and maps blank values to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
