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
	"techassist/internal/recordstore"
	orderrepo "techassist/internal/serviceorder/repository"
)

type MySQLRepository struct {
	store  *recordstore.Store
	logger *zap.Logger
}

func NewMySQLRepository(store *recordstore.Store, logger *zap.Logger) *MySQLRepository {
	return &MySQLRepository{store: store, logger: logger}
}

// OrderSummaries returns the status/value/opened-at projection of every
// order, plus the number of rows skipped because of an unknown status.
func (r *MySQLRepository) OrderSummaries(ctx context.Context) ([]domain.OrderSummary, int, error) {
	return r.summaries(ctx, nil)
}

// OrderSummariesBetween is OrderSummaries restricted to orders opened in
// [from, to).
func (r *MySQLRepository) OrderSummariesBetween(ctx context.Context, from, to time.Time) ([]domain.OrderSummary, int, error) {
	return r.summaries(ctx, sq.And{
		sq.GtOrEq{"opened_at": from.UTC()},
		sq.Lt{"opened_at": to.UTC()},
	})
}

func (r *MySQLRepository) CountCustomers(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, recordstore.Customers, nil)
	if err != nil {
		return 0, fmt.Errorf("counting customers: %w", err)
	}
	return n, nil
}

func (r *MySQLRepository) CountTechnicians(ctx context.Context) (int, error) {
	n, err := r.store.Count(ctx, recordstore.Technicians, nil)
	if err != nil {
		return 0, fmt.Errorf("counting technicians: %w", err)
	}
	return n, nil
}

// RecentOrders reads at most limit rows of the detailed view, most recently
// opened first. Rows with an unknown status are excluded before the limit.
func (r *MySQLRepository) RecentOrders(ctx context.Context, limit uint64) ([]domain.EnrichedOrder, error) {
	known := make([]string, len(domain.OrderStatuses))
	for i, s := range domain.OrderStatuses {
		known[i] = string(s)
	}

	orders := []domain.EnrichedOrder{}
	err := r.store.Select(ctx, recordstore.OrderDetailed, recordstore.Query{
		Columns: orderrepo.EnrichedColumns,
		Where:   sq.Eq{"status": known},
		OrderBy: []string{"opened_at DESC", "id DESC"},
		Limit:   limit,
	}, func(rows *sql.Rows) error {
		o, err := orderrepo.ScanEnriched(rows)
		if errors.Is(err, domain.ErrUnknownOrderStatus) {
			r.logger.Warn("quarantined recent order with unknown status", zap.Int64("orderId", o.ID))
			return nil
		}
		if err != nil {
			return err
		}
		orders = append(orders, o)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading recent orders: %w", err)
	}

	return orders, nil
}

func (r *MySQLRepository) summaries(ctx context.Context, where sq.Sqlizer) ([]domain.OrderSummary, int, error) {
	summaries := []domain.OrderSummary{}
	quarantined := 0

	err := r.store.Select(ctx, recordstore.ServiceOrders, recordstore.Query{
		Columns: orderrepo.SummaryColumns,
		Where:   where,
	}, func(rows *sql.Rows) error {
		s, err := orderrepo.ScanSummary(rows)
		if errors.Is(err, domain.ErrUnknownOrderStatus) {
			quarantined++
			return nil
		}
		if err != nil {
			return err
		}
		summaries = append(summaries, s)
		return nil
	})
	if err != nil {
		return nil, 0, fmt.Errorf("loading order summaries: %w", err)
	}

	if quarantined > 0 {
		r.logger.Warn("quarantined orders with unknown status", zap.Int("count", quarantined))
	}

	return summaries, quarantined, nil
}
