package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

func newMockRepository(t *testing.T) (*MySQLRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return NewMySQLRepository(recordstore.New(db)), mock
}

func TestRepository_List(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, specialty, created_at FROM technicians ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "specialty", "created_at"}).
			AddRow(4, "Carlos", "Notebooks", now).
			AddRow(2, "Daniela", "Celulares", now))

	technicians, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, technicians, 2)
	assert.Equal(t, "Carlos", technicians[0].Name)
	assert.Equal(t, "Celulares", technicians[1].Specialty)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE technicians SET name = ?, specialty = ? WHERE id = ?")).
		WithArgs("Carlos", "Impressoras", int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), domain.Technician{ID: 99, Name: "Carlos", Specialty: "Impressoras"})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO technicians (name,specialty) VALUES (?,?)")).
		WithArgs("Carlos", "Notebooks").
		WillReturnResult(sqlmock.NewResult(4, 1))

	id, err := repo.Create(context.Background(), domain.Technician{Name: "Carlos", Specialty: "Notebooks"})

	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
}
