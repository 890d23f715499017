package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techassist/internal/recordstore"
)

var serviceRowColumns = []string{"id", "name", "description", "price", "created_at"}

func newMockRepository(t *testing.T) (*MySQLRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewMySQLRepository(recordstore.New(db)), mock
}

func TestRepository_List_ScansDecimalPrice(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, created_at FROM services ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(serviceRowColumns).
			AddRow(1, "Formatação", "Reinstalação do sistema", "120.00", now).
			AddRow(2, "Troca de tela", nil, "350.50", now))

	services, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.True(t, decimal.RequireFromString("120").Equal(services[0].Price))
	assert.Equal(t, "Reinstalação do sistema", *services[0].Description)
	assert.Nil(t, services[1].Description)
	assert.Equal(t, "350.5", services[1].Price.String())
}

func TestRepository_FindByIDs(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, price, created_at FROM services WHERE id IN (?,?,?)")).
		WithArgs(int64(1), int64(2), int64(9)).
		WillReturnRows(sqlmock.NewRows(serviceRowColumns).
			AddRow(1, "Formatação", nil, "120.00", now).
			AddRow(2, "Limpeza", nil, "60.00", now))

	found, err := repo.FindByIDs(context.Background(), []int64{1, 2, 9})

	require.NoError(t, err)
	assert.Len(t, found, 2)
	assert.Contains(t, found, int64(1))
	assert.NotContains(t, found, int64(9))
}

func TestRepository_FindByIDs_EmptyDoesNotQuery(t *testing.T) {
	repo, _ := newMockRepository(t)

	found, err := repo.FindByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Empty(t, found)
}
