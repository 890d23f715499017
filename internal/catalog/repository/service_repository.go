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

var serviceColumns = []string{"id", "name", "description", "price", "created_at"}

type MySQLRepository struct {
	store *recordstore.Store
}

func NewMySQLRepository(store *recordstore.Store) *MySQLRepository {
	return &MySQLRepository{store: store}
}

func (r *MySQLRepository) List(ctx context.Context) ([]domain.Service, error) {
	services, err := r.find(ctx, recordstore.Query{
		Columns: serviceColumns,
		OrderBy: []string{"name ASC", "id ASC"},
	})
	if err != nil {
		return nil, fmt.Errorf("listing services: %w", err)
	}
	return services, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int64) (*domain.Service, error) {
	services, err := r.find(ctx, recordstore.Query{
		Columns: serviceColumns,
		Where:   sq.Eq{"id": id},
		Limit:   1,
	})
	if err != nil {
		return nil, fmt.Errorf("finding service %d: %w", id, err)
	}

	if len(services) == 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service with id %d not found", id))
	}

	return &services[0], nil
}

// FindByIDs returns the services with the given ids keyed by id. Unknown ids
// are absent from the map.
func (r *MySQLRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]domain.Service, error) {
	found := make(map[int64]domain.Service, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	services, err := r.find(ctx, recordstore.Query{
		Columns: serviceColumns,
		Where:   sq.Eq{"id": ids},
	})
	if err != nil {
		return nil, fmt.Errorf("finding services: %w", err)
	}

	for _, s := range services {
		found[s.ID] = s
	}
	return found, nil
}

func (r *MySQLRepository) Create(ctx context.Context, s domain.Service) (int64, error) {
	id, err := r.store.Insert(ctx, recordstore.Services, recordstore.Values{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
	})
	if err != nil {
		return 0, fmt.Errorf("inserting service: %w", err)
	}
	return id, nil
}

func (r *MySQLRepository) Update(ctx context.Context, s domain.Service) error {
	err := r.store.UpdateByID(ctx, recordstore.Services, s.ID, recordstore.Values{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
	})
	if err != nil {
		return fmt.Errorf("updating service %d: %w", s.ID, err)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteByID(ctx, recordstore.Services, id); err != nil {
		return fmt.Errorf("deleting service %d: %w", id, err)
	}
	return nil
}

func (r *MySQLRepository) find(ctx context.Context, q recordstore.Query) ([]domain.Service, error) {
	services := []domain.Service{}
	err := r.store.Select(ctx, recordstore.Services, q, func(rows *sql.Rows) error {
		var s domain.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Price, &s.CreatedAt); err != nil {
			return err
		}
		services = append(services, s)
		return nil
	})
	return services, err
}
