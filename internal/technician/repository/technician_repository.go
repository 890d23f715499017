package repository

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

var technicianColumns = []string{"id", "name", "specialty", "created_at"}

type MySQLRepository struct {
	store *recordstore.Store
}

func NewMySQLRepository(store *recordstore.Store) *MySQLRepository {
	return &MySQLRepository{store: store}
}

func (r *MySQLRepository) List(ctx context.Context) ([]domain.Technician, error) {
	technicians := []domain.Technician{}
	err := r.store.Select(ctx, recordstore.Technicians, recordstore.Query{
		Columns: technicianColumns,
		OrderBy: []string{"name ASC", "id ASC"},
	}, func(rows *sql.Rows) error {
		var t domain.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialty, &t.CreatedAt); err != nil {
			return err
		}
		technicians = append(technicians, t)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing technicians: %w", err)
	}

	return technicians, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int64) (*domain.Technician, error) {
	var found *domain.Technician
	err := r.store.Select(ctx, recordstore.Technicians, recordstore.Query{
		Columns: technicianColumns,
		Where:   sq.Eq{"id": id},
		Limit:   1,
	}, func(rows *sql.Rows) error {
		var t domain.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Specialty, &t.CreatedAt); err != nil {
			return err
		}
		found = &t
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding technician %d: %w", id, err)
	}

	if found == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("technician with id %d not found", id))
	}

	return found, nil
}

func (r *MySQLRepository) Create(ctx context.Context, t domain.Technician) (int64, error) {
	id, err := r.store.Insert(ctx, recordstore.Technicians, recordstore.Values{
		"name":      t.Name,
		"specialty": t.Specialty,
	})
	if err != nil {
		return 0, fmt.Errorf("inserting technician: %w", err)
	}
	return id, nil
}

func (r *MySQLRepository) Update(ctx context.Context, t domain.Technician) error {
	err := r.store.UpdateByID(ctx, recordstore.Technicians, t.ID, recordstore.Values{
		"name":      t.Name,
		"specialty": t.Specialty,
	})
	if err != nil {
		return fmt.Errorf("updating technician %d: %w", t.ID, err)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteByID(ctx, recordstore.Technicians, id); err != nil {
		return fmt.Errorf("deleting technician %d: %w", id, err)
	}
	return nil
}
