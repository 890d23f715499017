package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"techassist/internal/domain"
	"techassist/internal/infrastructure/httpresponse"
	"techassist/internal/serviceorder/usecase"
)

type OrderUseCase interface {
	List(ctx context.Context) ([]domain.EnrichedOrder, error)
	Get(ctx context.Context, id int64) (*domain.EnrichedOrder, error)
	Create(ctx context.Context, in usecase.CreateOrderInput) (*domain.EnrichedOrder, error)
	ChangeStatus(ctx context.Context, id int64, in usecase.StatusChangeInput) (*domain.EnrichedOrder, error)
	Delete(ctx context.Context, id int64) error
}

type OrderController struct {
	useCase OrderUseCase
	logger  *zap.Logger
}

func NewOrderController(useCase OrderUseCase, logger *zap.Logger) *OrderController {
	return &OrderController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *OrderController) List(w http.ResponseWriter, r *http.Request) {
	orders, err := c.useCase.List(r.Context())
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading orders", err)
		return
	}

	resp := make([]OrderResponse, len(orders))
	for i, o := range orders {
		resp[i] = toResponse(o)
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, resp)
}

func (c *OrderController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	order, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading order", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*order))
}

func (c *OrderController) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	items := make([]usecase.ItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = usecase.ItemInput{
			ServiceID: item.ServiceID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	order, err := c.useCase.Create(r.Context(), usecase.CreateOrderInput{
		CustomerID:         req.CustomerID,
		TechnicianID:       req.TechnicianID,
		ProblemDescription: req.ProblemDescription,
		Diagnosis:          req.Diagnosis,
		WarrantyMonths:     req.WarrantyMonths,
		Items:              items,
	})
	if err != nil {
		httpresponse.Error(w, r, c.logger, "creating order", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusCreated, toResponse(*order))
}

func (c *OrderController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	var req StatusRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	order, err := c.useCase.ChangeStatus(r.Context(), id, usecase.StatusChangeInput{
		Status:    req.Status,
		Diagnosis: req.Diagnosis,
		Solution:  req.Solution,
	})
	if err != nil {
		httpresponse.Error(w, r, c.logger, "updating order status", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*order))
}

func (c *OrderController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		httpresponse.Error(w, r, c.logger, "deleting order", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
