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

var customerColumns = []string{"id", "name", "phone", "email", "address", "created_at"}

type MySQLRepository struct {
	store *recordstore.Store
}

func NewMySQLRepository(store *recordstore.Store) *MySQLRepository {
	return &MySQLRepository{store: store}
}

// List returns every customer, newest first.
func (r *MySQLRepository) List(ctx context.Context) ([]domain.Customer, error) {
	customers := []domain.Customer{}
	err := r.store.Select(ctx, recordstore.Customers, recordstore.Query{
		Columns: customerColumns,
		OrderBy: []string{"created_at DESC", "id DESC"},
	}, func(rows *sql.Rows) error {
		c, err := scanCustomer(rows)
		if err != nil {
			return err
		}
		customers = append(customers, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	return customers, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var found *domain.Customer
	err := r.store.Select(ctx, recordstore.Customers, recordstore.Query{
		Columns: customerColumns,
		Where:   sq.Eq{"id": id},
		Limit:   1,
	}, func(rows *sql.Rows) error {
		c, err := scanCustomer(rows)
		if err != nil {
			return err
		}
		found = &c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding customer %d: %w", id, err)
	}

	if found == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("customer with id %d not found", id))
	}

	return found, nil
}

func (r *MySQLRepository) Create(ctx context.Context, c domain.Customer) (int64, error) {
	id, err := r.store.Insert(ctx, recordstore.Customers, recordstore.Values{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
	})
	if err != nil {
		return 0, fmt.Errorf("inserting customer: %w", err)
	}
	return id, nil
}

func (r *MySQLRepository) Update(ctx context.Context, c domain.Customer) error {
	err := r.store.UpdateByID(ctx, recordstore.Customers, c.ID, recordstore.Values{
		"name":    c.Name,
		"phone":   c.Phone,
		"email":   c.Email,
		"address": c.Address,
	})
	if err != nil {
		return fmt.Errorf("updating customer %d: %w", c.ID, err)
	}
	return nil
}

func (r *MySQLRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteByID(ctx, recordstore.Customers, id); err != nil {
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	return nil
}

func scanCustomer(rows *sql.Rows) (domain.Customer, error) {
	var c domain.Customer
	err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.CreatedAt)
	return c, err
}
