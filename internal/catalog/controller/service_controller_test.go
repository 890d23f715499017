package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techassist/internal/catalog/usecase"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
)

type mockServiceUseCase struct {
	ListFunc   func(ctx context.Context) ([]domain.Service, error)
	GetFunc    func(ctx context.Context, id int64) (*domain.Service, error)
	CreateFunc func(ctx context.Context, in usecase.ServiceInput) (*domain.Service, error)
	UpdateFunc func(ctx context.Context, id int64, in usecase.ServiceInput) (*domain.Service, error)
	DeleteFunc func(ctx context.Context, id int64) error
}

func (m *mockServiceUseCase) List(ctx context.Context) ([]domain.Service, error) {
	return m.ListFunc(ctx)
}

func (m *mockServiceUseCase) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return m.GetFunc(ctx, id)
}

func (m *mockServiceUseCase) Create(ctx context.Context, in usecase.ServiceInput) (*domain.Service, error) {
	return m.CreateFunc(ctx, in)
}

func (m *mockServiceUseCase) Update(ctx context.Context, id int64, in usecase.ServiceInput) (*domain.Service, error) {
	return m.UpdateFunc(ctx, id, in)
}

func (m *mockServiceUseCase) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func TestCreate_AcceptsNumericAndStringPrice(t *testing.T) {
	var got []decimal.Decimal
	uc := &mockServiceUseCase{
		CreateFunc: func(ctx context.Context, in usecase.ServiceInput) (*domain.Service, error) {
			got = append(got, in.Price)
			return &domain.Service{ID: 1, Name: in.Name, Price: in.Price}, nil
		},
	}
	ctrl := NewServiceController(uc, zap.NewNop())

	for _, body := range []string{`{"name":"Limpeza","price":60.5}`, `{"name":"Limpeza","price":"60.50"}`} {
		rec := httptest.NewRecorder()
		ctrl.Create(rec, httptest.NewRequest(http.MethodPost, "/api/servicos", strings.NewReader(body)))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"price":"60.50"`)
	}
	require.Len(t, got, 2)
	assert.True(t, got[0].Equal(got[1]))
}

func TestGet_NotFound(t *testing.T) {
	uc := &mockServiceUseCase{
		GetFunc: func(ctx context.Context, id int64) (*domain.Service, error) {
			return nil, apperrors.NewNotFoundError("service with id 5 not found")
		},
	}
	ctrl := NewServiceController(uc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/servicos/{id}", ctrl.Get)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/servicos/5", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
