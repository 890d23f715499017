package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
	"techassist/internal/serviceorder/repository"
)

const maxItemsPerOrder = 100

type OrderRepository interface {
	List(ctx context.Context) ([]domain.EnrichedOrder, error)
	FindEnriched(ctx context.Context, id int64) (*domain.EnrichedOrder, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	Create(ctx context.Context, o domain.Order) (int64, error)
	UpdateStatus(ctx context.Context, id int64, change repository.StatusChange) error
	Delete(ctx context.Context, id int64) error
}

// ServiceCatalog resolves the services referenced by order items.
type ServiceCatalog interface {
	FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error)
}

type ItemInput struct {
	ServiceID int64
	Quantity  int
	// UnitPrice overrides the catalogue price when set.
	UnitPrice *decimal.Decimal
}

type CreateOrderInput struct {
	CustomerID         int64
	TechnicianID       *int64
	ProblemDescription string
	Diagnosis          *string
	WarrantyMonths     *int
	Items              []ItemInput
}

type StatusChangeInput struct {
	Status    string
	Diagnosis *string
	Solution  *string
}

type OrderUseCase struct {
	repo    OrderRepository
	catalog ServiceCatalog
	cache   *cache.Store
	logger  *zap.Logger
	now     func() time.Time
}

func NewOrderUseCase(repo OrderRepository, catalog ServiceCatalog, cacheStore *cache.Store, logger *zap.Logger) *OrderUseCase {
	return &OrderUseCase{
		repo:    repo,
		catalog: catalog,
		cache:   cacheStore,
		logger:  logger,
		now:     time.Now,
	}
}

func (uc *OrderUseCase) List(ctx context.Context) ([]domain.EnrichedOrder, error) {
	return cache.Fetch(ctx, uc.cache, string(recordstore.OrderDetailed), "list", uc.repo.List)
}

func (uc *OrderUseCase) Get(ctx context.Context, id int64) (*domain.EnrichedOrder, error) {
	return uc.repo.FindEnriched(ctx, id)
}

// Create opens a new order. Item subtotals and the order total are computed
// here from quantity and unit price.
func (uc *OrderUseCase) Create(ctx context.Context, in CreateOrderInput) (*domain.EnrichedOrder, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	items, err := uc.priceItems(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	order := domain.Order{
		CustomerID:         in.CustomerID,
		TechnicianID:       in.TechnicianID,
		Status:             domain.OrderStatusOpen,
		ProblemDescription: strings.TrimSpace(in.ProblemDescription),
		Diagnosis:          in.Diagnosis,
		OpenedAt:           uc.now().UTC(),
		TotalValue:         domain.SumSubtotals(items),
		WarrantyMonths:     in.WarrantyMonths,
		Items:              items,
	}

	id, err := uc.repo.Create(ctx, order)
	if err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	uc.logger.Info("order created",
		zap.Int64("orderId", id),
		zap.Int64("customerId", order.CustomerID),
		zap.Int("itemCount", len(items)),
		zap.String("totalValue", order.TotalValue.StringFixed(2)),
	)

	return uc.repo.FindEnriched(ctx, id)
}

// ChangeStatus moves an order along its lifecycle. Moving to completed stamps
// the completion time.
func (uc *OrderUseCase) ChangeStatus(ctx context.Context, id int64, in StatusChangeInput) (*domain.EnrichedOrder, error) {
	next, err := domain.ParseOrderStatus(in.Status)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid status", apperrors.ValidationDetail{
			Field:   "status",
			Message: "status must be one of open, in_progress, completed, cancelled",
		})
	}

	order, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status.Terminal() {
		return nil, apperrors.NewConflictError(fmt.Sprintf("order %d is already %s", id, order.Status))
	}
	if !order.Status.CanTransitionTo(next) {
		return nil, apperrors.NewConflictError(fmt.Sprintf("cannot move order from %s to %s", order.Status, next))
	}

	change := repository.StatusChange{
		From:      order.Status,
		Status:    next,
		Diagnosis: in.Diagnosis,
		Solution:  in.Solution,
	}
	if next == domain.OrderStatusCompleted {
		completedAt := uc.now().UTC()
		change.CompletedAt = &completedAt
	}

	if err := uc.repo.UpdateStatus(ctx, id, change); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)

	uc.logger.Info("order status changed",
		zap.Int64("orderId", id),
		zap.String("from", string(order.Status)),
		zap.String("to", string(next)),
	)

	return uc.repo.FindEnriched(ctx, id)
}

func (uc *OrderUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.invalidate(ctx)
	return nil
}

func (uc *OrderUseCase) priceItems(ctx context.Context, inputs []ItemInput) ([]domain.OrderItem, error) {
	if len(inputs) == 0 {
		return []domain.OrderItem{}, nil
	}

	ids := make([]int64, 0, len(inputs))
	seen := make(map[int64]bool, len(inputs))
	for _, in := range inputs {
		if !seen[in.ServiceID] {
			seen[in.ServiceID] = true
			ids = append(ids, in.ServiceID)
		}
	}

	services, err := uc.catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var details []apperrors.ValidationDetail
	items := make([]domain.OrderItem, 0, len(inputs))
	for i, in := range inputs {
		service, ok := services[in.ServiceID]
		if !ok {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].serviceId", i),
				Message: fmt.Sprintf("service %d does not exist", in.ServiceID),
			})
			continue
		}

		unitPrice := service.Price
		if in.UnitPrice != nil {
			unitPrice = *in.UnitPrice
		}

		items = append(items, domain.OrderItem{
			ServiceID: in.ServiceID,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			Subtotal:  domain.LineSubtotal(in.Quantity, unitPrice),
		})
	}

	if len(details) > 0 {
		return nil, apperrors.NewValidationError("validation failed", details...)
	}

	return items, nil
}

func (uc *OrderUseCase) invalidate(ctx context.Context) {
	uc.cache.Invalidate(ctx, string(recordstore.ServiceOrders))
	uc.cache.Invalidate(ctx, string(recordstore.ServiceOrderItems))
	uc.cache.Invalidate(ctx, string(recordstore.OrderDetailed))
}

func validateCreate(in CreateOrderInput) error {
	var details []apperrors.ValidationDetail

	if in.CustomerID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "customerId", Message: "customerId is required"})
	}
	if in.TechnicianID != nil && *in.TechnicianID <= 0 {
		details = append(details, apperrors.ValidationDetail{Field: "technicianId", Message: "technicianId must be a positive integer"})
	}
	if strings.TrimSpace(in.ProblemDescription) == "" {
		details = append(details, apperrors.ValidationDetail{Field: "problemDescription", Message: "problemDescription is required"})
	}
	if in.WarrantyMonths != nil && *in.WarrantyMonths < 0 {
		details = append(details, apperrors.ValidationDetail{Field: "warrantyMonths", Message: "warrantyMonths must be non-negative"})
	}
	if len(in.Items) > maxItemsPerOrder {
		details = append(details, apperrors.ValidationDetail{Field: "items", Message: fmt.Sprintf("items exceeds maximum of %d", maxItemsPerOrder)})
	}

	for i, item := range in.Items {
		if item.ServiceID <= 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].serviceId", i),
				Message: "serviceId must be a positive integer",
			})
		}
		if item.Quantity < 1 || item.Quantity > 10000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].quantity", i),
				Message: "quantity must be between 1 and 10000",
			})
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unitPrice", i),
				Message: "unitPrice must be non-negative",
			})
		} else if item.UnitPrice != nil && !item.UnitPrice.Equal(item.UnitPrice.Round(2)) {
			details = append(details, apperrors.ValidationDetail{
				Field:   fmt.Sprintf("items[%d].unitPrice", i),
				Message: "unitPrice must have at most 2 decimal places",
			})
		}
	}

	if len(details) > 0 {
		return apperrors.NewValidationError("validation failed", details...)
	}
	return nil
}
