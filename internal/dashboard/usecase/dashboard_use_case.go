package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"techassist/internal/dashboard/aggregator"
	"techassist/internal/domain"
)

const recentOrdersLimit = 5

type Repository interface {
	OrderSummaries(ctx context.Context) ([]domain.OrderSummary, int, error)
	CountCustomers(ctx context.Context) (int, error)
	CountTechnicians(ctx context.Context) (int, error)
	RecentOrders(ctx context.Context, limit uint64) ([]domain.EnrichedOrder, error)
}

type DashboardUseCase struct {
	repo           Repository
	location       *time.Location
	currencyPrefix string
	logger         *zap.Logger
	now            func() time.Time
}

func NewDashboardUseCase(repo Repository, location *time.Location, currencyPrefix string, logger *zap.Logger) *DashboardUseCase {
	return &DashboardUseCase{
		repo:           repo,
		location:       location,
		currencyPrefix: currencyPrefix,
		logger:         logger,
		now:            time.Now,
	}
}

// GetDashboard runs the four independent reads concurrently and assembles
// the view-model once all of them succeed. The first failure cancels the
// others and fails the whole call.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*Dashboard, error) {
	var (
		summaries    []domain.OrderSummary
		quarantined  int
		customers    int
		technicians  int
		recentOrders []domain.EnrichedOrder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		summaries, quarantined, err = uc.repo.OrderSummaries(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = uc.repo.CountCustomers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		technicians, err = uc.repo.CountTechnicians(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		recentOrders, err = uc.repo.RecentOrders(gctx, recentOrdersLimit)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading dashboard: %w", err)
	}

	ref := uc.now().In(uc.location)
	counts := aggregator.CountByStatus(summaries)
	revenue := aggregator.MonthlyRevenue(summaries, ref, uc.location)
	if counts.Unrecognized > 0 {
		uc.logger.Warn("orders with unrecognized status reached the aggregator", zap.Int("count", counts.Unrecognized))
	}

	recent := aggregator.RecentOrders(recentOrders, recentOrdersLimit)
	recentView := make([]RecentOrder, len(recent))
	for i, o := range recent {
		recentView[i] = RecentOrder{
			ID:                 o.ID,
			CustomerName:       o.CustomerName,
			ProblemDescription: o.ProblemDescription,
			Status:             string(o.Status),
			TotalValue:         o.TotalValue.StringFixed(2),
			OpenedAt:           o.OpenedAt,
		}
	}

	return &Dashboard{
		OpenOrders:            counts.Open,
		InProgressOrders:      counts.InProgress,
		CompletedOrders:       counts.Completed,
		CancelledOrders:       counts.Cancelled,
		MonthlyRevenue:        revenue.StringFixed(2),
		MonthlyRevenueDisplay: FormatMoney(uc.currencyPrefix, revenue),
		TotalCustomers:        customers,
		TotalTechnicians:      technicians,
		RecentOrders:          recentView,
		ReferenceMonth:        ref.Format("2006-01"),
		QuarantinedOrders:     quarantined,
	}, nil
}

// FormatMoney renders v with two fraction digits after the currency prefix.
func FormatMoney(prefix string, v decimal.Decimal) string {
	if prefix == "" {
		return v.StringFixed(2)
	}
	return prefix + " " + v.StringFixed(2)
}
