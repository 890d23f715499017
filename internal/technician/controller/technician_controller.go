package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"techassist/internal/domain"
	"techassist/internal/infrastructure/httpresponse"
	"techassist/internal/technician/usecase"
)

type TechnicianUseCase interface {
	List(ctx context.Context) ([]domain.Technician, error)
	Get(ctx context.Context, id int64) (*domain.Technician, error)
	Create(ctx context.Context, in usecase.TechnicianInput) (*domain.Technician, error)
	Update(ctx context.Context, id int64, in usecase.TechnicianInput) (*domain.Technician, error)
	Delete(ctx context.Context, id int64) error
}

type TechnicianController struct {
	useCase TechnicianUseCase
	logger  *zap.Logger
}

func NewTechnicianController(useCase TechnicianUseCase, logger *zap.Logger) *TechnicianController {
	return &TechnicianController{useCase: useCase, logger: logger}
}

func (c *TechnicianController) List(w http.ResponseWriter, r *http.Request) {
	technicians, err := c.useCase.List(r.Context())
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading technicians", err)
		return
	}

	resp := make([]TechnicianResponse, len(technicians))
	for i, t := range technicians {
		resp[i] = toResponse(t)
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, resp)
}

func (c *TechnicianController) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	t, err := c.useCase.Get(r.Context(), id)
	if err != nil {
		httpresponse.Error(w, r, c.logger, "loading technician", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*t))
}

func (c *TechnicianController) Create(w http.ResponseWriter, r *http.Request) {
	var req TechnicianRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	t, err := c.useCase.Create(r.Context(), usecase.TechnicianInput{Name: req.Name, Specialty: req.Specialty})
	if err != nil {
		httpresponse.Error(w, r, c.logger, "creating technician", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusCreated, toResponse(*t))
}

func (c *TechnicianController) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	var req TechnicianRequest
	if !httpresponse.DecodeJSON(w, r, c.logger, &req) {
		return
	}

	t, err := c.useCase.Update(r.Context(), id, usecase.TechnicianInput{Name: req.Name, Specialty: req.Specialty})
	if err != nil {
		httpresponse.Error(w, r, c.logger, "updating technician", err)
		return
	}
	httpresponse.JSON(w, c.logger, http.StatusOK, toResponse(*t))
}

func (c *TechnicianController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := httpresponse.PathID(w, r, c.logger)
	if !ok {
		return
	}

	if err := c.useCase.Delete(r.Context(), id); err != nil {
		httpresponse.Error(w, r, c.logger, "deleting technician", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toResponse(t domain.Technician) TechnicianResponse {
	return TechnicianResponse{
		ID:        t.ID,
		Name:      t.Name,
		Specialty: t.Specialty,
		CreatedAt: t.CreatedAt,
	}
}
