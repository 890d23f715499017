package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"techassist/internal/cache"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
)

type mockRepository struct {
	ListFunc     func(ctx context.Context) ([]domain.Customer, error)
	FindByIDFunc func(ctx context.Context, id int64) (*domain.Customer, error)
	CreateFunc   func(ctx context.Context, c domain.Customer) (int64, error)
	UpdateFunc   func(ctx context.Context, c domain.Customer) error
	DeleteFunc   func(ctx context.Context, id int64) error
}

func (m *mockRepository) List(ctx context.Context) ([]domain.Customer, error) {
	return m.ListFunc(ctx)
}

func (m *mockRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	return m.FindByIDFunc(ctx, id)
}

func (m *mockRepository) Create(ctx context.Context, c domain.Customer) (int64, error) {
	return m.CreateFunc(ctx, c)
}

func (m *mockRepository) Update(ctx context.Context, c domain.Customer) error {
	return m.UpdateFunc(ctx, c)
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	return m.DeleteFunc(ctx, id)
}

func newTestUseCase(repo Repository) *CustomerUseCase {
	return NewCustomerUseCase(repo, cache.NewStore(cache.NewMemory(time.Minute), zap.NewNop()), zap.NewNop())
}

func ptr(s string) *string { return &s }

func TestCreate_MissingRequiredFieldsSkipsRecordStore(t *testing.T) {
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, c domain.Customer) (int64, error) {
			t.Fatal("record store must not be called")
			return 0, nil
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Create(context.Background(), CustomerInput{Name: "  ", Phone: ""})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Details, 2)
	assert.Equal(t, "name", ve.Details[0].Field)
	assert.Equal(t, "phone", ve.Details[1].Field)
}

func TestCreate_InvalidEmail(t *testing.T) {
	uc := newTestUseCase(&mockRepository{})

	_, err := uc.Create(context.Background(), CustomerInput{Name: "Ana", Phone: "1199", Email: ptr("not-an-email")})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "email", ve.Details[0].Field)
}

func TestCreate_NormalizesAndReturnsStoredRecord(t *testing.T) {
	var inserted domain.Customer
	repo := &mockRepository{
		CreateFunc: func(ctx context.Context, c domain.Customer) (int64, error) {
			inserted = c
			return 5, nil
		},
		FindByIDFunc: func(ctx context.Context, id int64) (*domain.Customer, error) {
			return &domain.Customer{ID: id, Name: "Ana"}, nil
		},
	}
	uc := newTestUseCase(repo)

	got, err := uc.Create(context.Background(), CustomerInput{
		Name:    " Ana ",
		Phone:   "11 9000",
		Email:   ptr(""),
		Address: ptr(" Rua B "),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.Equal(t, "Ana", inserted.Name)
	assert.Nil(t, inserted.Email)
	assert.Equal(t, "Rua B", *inserted.Address)
}

func TestList_CachedUntilWrite(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		ListFunc: func(ctx context.Context) ([]domain.Customer, error) {
			calls++
			return []domain.Customer{{ID: int64(calls), Name: "Ana"}}, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error { return nil },
	}
	uc := newTestUseCase(repo)
	ctx := context.Background()

	first, err := uc.List(ctx)
	require.NoError(t, err)
	second, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	require.NoError(t, uc.Delete(ctx, 9))

	third, err := uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Equal(t, int64(2), third[0].ID)
}

func TestDelete_FailureKeepsCache(t *testing.T) {
	calls := 0
	repo := &mockRepository{
		ListFunc: func(ctx context.Context) ([]domain.Customer, error) {
			calls++
			return []domain.Customer{}, nil
		},
		DeleteFunc: func(ctx context.Context, id int64) error {
			return errors.New("connection reset")
		},
	}
	uc := newTestUseCase(repo)
	ctx := context.Background()

	_, err := uc.List(ctx)
	require.NoError(t, err)

	assert.Error(t, uc.Delete(ctx, 1))

	_, err = uc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestUpdate_PassesID(t *testing.T) {
	var updated domain.Customer
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, c domain.Customer) error {
			updated = c
			return nil
		},
		FindByIDFunc: func(ctx context.Context, id int64) (*domain.Customer, error) {
			return &domain.Customer{ID: id}, nil
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Update(context.Background(), 8, CustomerInput{Name: "Ana", Phone: "1"})

	require.NoError(t, err)
	assert.Equal(t, int64(8), updated.ID)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockRepository{
		UpdateFunc: func(ctx context.Context, c domain.Customer) error {
			return apperrors.NewNotFoundError("customers with id 8 not found")
		},
	}
	uc := newTestUseCase(repo)

	_, err := uc.Update(context.Background(), 8, CustomerInput{Name: "Ana", Phone: "1"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
