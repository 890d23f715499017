package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"techassist/internal/customer/usecase"
	"techassist/internal/domain"
	"techassist/internal/infrastructure/httpresponse"
)

type CustomerUseCase interface {
	List(ctx context.Context) ([]domain.Customer, error)
	Get(ctx context.Context, id int64) (*domain.Customer, error)
	Create(ctx context.Context, in usecase.CustomerInput) (*domain.Customer, error)
	Update(ctx context.Context, id int64, in usecase.CustomerInput) (*domain.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type CustomerController struct {
	useCase CustomerUseCase
	logger  *zap.Logger
}

func NewCustomerController(useCase CustomerUseCase, logger *zap.Logger) *CustomerController {
	return &CustomerController{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *CustomerController) List(w http.ResponseWriter, r *http.Request) {
	customers, err := c.useCase.List(r.Context())
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading customers", err)
		return
	}

	resp := make([]CustomerResponse, 0, len(customers))
	for _, customer := range customers {
		resp = append(resp, toResponse(customer))
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, resp)
}

func (c *CustomerController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	customer, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading customer", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*customer))
}

func (c *CustomerController) Create(w http.ResponseWriter, r *http.Request) {
	var req CustomerRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	customer, err := c.useCase.Create(r.Context(), toInput(req))
	if err != nil {
		httpresponse.Error(w, r, c.logger, "creating customer", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusCreated, toResponse(*customer))
}

func (c *CustomerController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	var req CustomerRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	customer, err := c.useCase.Update(r.Context(), id, toInput(req))
	if err != nil {
		httpresponse.Error(w, r, c.logger, "updating customer", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*customer))
}

func (c *CustomerController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		httpresponse.Error(w, r, c.logger, "deleting customer", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toInput(req CustomerRequest) usecase.CustomerInput {
	return usecase.CustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	}
}
