package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"techassist/internal/catalog/usecase"
	"techassist/internal/domain"
	"techassist/internal/infrastructure/httpresponse"
)

type ServiceUseCase interface {
	List(ctx context.Context) ([]domain.Service, error)
	Get(ctx context.Context, id int64) (*domain.Service, error)
	Create(ctx context.Context, in usecase.ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, id int64, in usecase.ServiceInput) (*domain.Service, error)
	Delete(ctx context.Context, id int64) error
}

type ServiceController struct {
	useCase ServiceUseCase
	logger  *zap.Logger
}

func NewServiceController(useCase ServiceUseCase, logger *zap.Logger) *ServiceController {
	return &ServiceController{useCase: useCase, logger: logger}
}

func (c *ServiceController) List(w http.ResponseWriter, r *http.Request) {
	services, err := c.useCase.List(r.Context())
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading services", err)
		return
	}

	resp := make([]ServiceResponse, len(services))
	for i, s := range services {
		resp[i] = toResponse(s)
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, resp)
}

func (c *ServiceController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	s, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading service", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*s))
}

func (c *ServiceController) Create(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	s, err := c.useCase.Create(r.Context(), toInput(req))
	if err != nil {
		httpresponse.Error(w, r, c.logger, "creating service", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusCreated, toResponse(*s))
}

func (c *ServiceController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	var req ServiceRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	s, err := c.useCase.Update(r.Context(), id, toInput(req))
	if err != nil {
		httpresponse.Error(w, r, c.logger, "updating service", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*s))
}

func (c *ServiceController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		httpresponse.Error(w, r, c.logger, "deleting service", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toInput(req ServiceRequest) usecase.ServiceInput {
	return usecase.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
	}
}

func toResponse(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Price:       s.Price.StringFixed(2),
		CreatedAt:   s.CreatedAt,
	}
}
