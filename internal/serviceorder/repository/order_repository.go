package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"

	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
	"techassist/internal/recordstore"
)

var orderColumns = []string{
	"id", "customer_id", "technician_id", "status", "problem_description",
	"diagnosis", "solution", "opened_at", "completed_at", "total_value",
	"warranty_months", "created_at",
}

var itemColumns = []string{"order_id", "service_id", "quantity", "unit_price", "subtotal"}

// StatusChange is the set of columns written by a status transition. Nil
// fields are left untouched.
// StatusChange moves an order from From to Status. The update only applies
// while the stored status is still From.
type StatusChange struct {
	From        domain.OrderStatus
	Status      domain.OrderStatus
	CompletedAt *time.Time
	Diagnosis   *string
	Solution    *string
}

type MySQLOrderRepository struct {
	store  *recordstore.Store
	logger *zap.Logger
}

func NewMySQLOrderRepository(store *recordstore.Store, logger *zap.Logger) *MySQLOrderRepository {
	return &MySQLOrderRepository{store: store, logger: logger}
}

// List returns every order from the detailed view, most recently opened
// first. Rows with an unknown status are logged and skipped.
func (r *MySQLOrderRepository) List(ctx context.Context) ([]domain.EnrichedOrder, error) {
	orders := []domain.EnrichedOrder{}
	err := r.store.Select(ctx, recordstore.OrderDetailed, recordstore.Query{
		Columns: EnrichedColumns,
		OrderBy: []string{"opened_at DESC", "id DESC"},
	}, func(rows *sql.Rows) error {
		o, err := ScanEnriched(rows)
		if errors.Is(err, domain.ErrUnknownOrderStatus) {
			r.logger.Warn("quarantined order with unknown status", zap.Int64("orderId", o.ID), zap.Error(err))
			return nil
		}
		if err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}

	return orders, nil
}

func (r *MySQLOrderRepository) FindEnriched(ctx context.Context, id int64) (*domain.EnrichedOrder, error) {
	var found *domain.EnrichedOrder
	err := r.store.Select(ctx, recordstore.OrderDetailed, recordstore.Query{
		Columns: EnrichedColumns,
		Where:   sq.Eq{"id": id},
		Limit:   1,
	}, func(rows *sql.Rows) error {
		o, err := ScanEnriched(rows)
		if err != nil {
			return err
		}
		found = &o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding order %d: %w", id, err)
	}

	if found == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return found, nil
}

func (r *MySQLOrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	var found *domain.Order
	err := r.store.Select(ctx, recordstore.ServiceOrders, recordstore.Query{
		Columns: orderColumns,
		Where:   sq.Eq{"id": id},
		Limit:   1,
	}, func(rows *sql.Rows) error {
		var (
			o         domain.Order
			rawStatus string
		)
		err := rows.Scan(
			&o.ID, &o.CustomerID, &o.TechnicianID, &rawStatus, &o.ProblemDescription,
			&o.Diagnosis, &o.Solution, &o.OpenedAt, &o.CompletedAt, &o.TotalValue,
			&o.WarrantyMonths, &o.CreatedAt,
		)
		if err != nil {
			return err
		}
		if o.Status, err = domain.ParseOrderStatus(rawStatus); err != nil {
			return err
		}
		found = &o
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("finding order %d: %w", id, err)
	}

	if found == nil {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("order with id %d not found", id))
	}

	return found, nil
}

// Create stores the order and its items in one transaction.
func (r *MySQLOrderRepository) Create(ctx context.Context, o domain.Order) (int64, error) {
	var orderID int64
	err := r.store.WithTx(ctx, func(tx *recordstore.Store) error {
		id, err := tx.Insert(ctx, recordstore.ServiceOrders, recordstore.Values{
			"customer_id":         o.CustomerID,
			"technician_id":       o.TechnicianID,
			"status":              string(o.Status),
			"problem_description": o.ProblemDescription,
			"diagnosis":           o.Diagnosis,
			"opened_at":           o.OpenedAt,
			"total_value":         o.TotalValue,
			"warranty_months":     o.WarrantyMonths,
		})
		if err != nil {
			return err
		}

		rows := make([][]any, len(o.Items))
		for i, item := range o.Items {
			rows[i] = []any{id, item.ServiceID, item.Quantity, item.UnitPrice, item.Subtotal}
		}
		if err := tx.InsertBatch(ctx, recordstore.ServiceOrderItems, itemColumns, rows); err != nil {
			return err
		}

		orderID = id
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("creating order: %w", err)
	}

	return orderID, nil
}

func (r *MySQLOrderRepository) UpdateStatus(ctx context.Context, id int64, change StatusChange) error {
	values := recordstore.Values{"status": string(change.Status)}
	if change.CompletedAt != nil {
		values["completed_at"] = *change.CompletedAt
	}
	if change.Diagnosis != nil {
		values["diagnosis"] = *change.Diagnosis
	}
	if change.Solution != nil {
		values["solution"] = *change.Solution
	}

	affected, err := r.store.UpdateWhere(ctx, recordstore.ServiceOrders, id, sq.Eq{"status": string(change.From)}, values)
	if err != nil {
		return fmt.Errorf("updating status of order %d: %w", id, err)
	}
	if affected == 0 {
		return apperrors.NewConflictError(fmt.Sprintf("order %d is no longer %s", id, change.From))
	}
	return nil
}

// Delete removes the order. Its items go with it through the foreign key.
func (r *MySQLOrderRepository) Delete(ctx context.Context, id int64) error {
	if err := r.store.DeleteByID(ctx, recordstore.ServiceOrders, id); err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	return nil
}
