package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"techassist/internal/dashboard/aggregator"
	dashboarduc "techassist/internal/dashboard/usecase"
	"techassist/internal/domain"
	apperrors "techassist/internal/errors"
)

type Repository interface {
	OrderSummariesBetween(ctx context.Context, from, to time.Time) ([]domain.OrderSummary, int, error)
}

// MonthlyReport summarizes the orders opened in one calendar month.
type MonthlyReport struct {
	Year                 int       `json:"year"`
	Month                int       `json:"month"`
	From                 time.Time `json:"from"`
	To                   time.Time `json:"to"`
	TotalOrders          int       `json:"totalOrders"`
	OpenOrders           int       `json:"openOrders"`
	InProgressOrders     int       `json:"inProgressOrders"`
	CompletedOrders      int       `json:"completedOrders"`
	CancelledOrders      int       `json:"cancelledOrders"`
	Revenue              string    `json:"revenue"`
	RevenueDisplay       string    `json:"revenueDisplay"`
	AverageTicket        string    `json:"averageTicket"`
	AverageTicketDisplay string    `json:"averageTicketDisplay"`
	CancellationRate     string    `json:"cancellationRate"`
	QuarantinedOrders    int       `json:"quarantinedOrders"`
}

type ReportUseCase struct {
	repo           Repository
	location       *time.Location
	currencyPrefix string
	logger         *zap.Logger
	now            func() time.Time
}

func NewReportUseCase(repo Repository, location *time.Location, currencyPrefix string, logger *zap.Logger) *ReportUseCase {
	return &ReportUseCase{
		repo:           repo,
		location:       location,
		currencyPrefix: currencyPrefix,
		logger:         logger,
		now:            time.Now,
	}
}

// CurrentPeriod returns the year and month of the current date in the
// configured calendar.
func (uc *ReportUseCase) CurrentPeriod() (int, int) {
	now := uc.now().In(uc.location)
	return now.Year(), int(now.Month())
}

func (uc *ReportUseCase) MonthlyReport(ctx context.Context, year, month int) (*MonthlyReport, error) {
	var details []apperrors.ValidationDetail
	if year < 2000 || year > 9999 {
		details = append(details, apperrors.ValidationDetail{Field: "year", Message: "year must be between 2000 and 9999"})
	}
	if month < 1 || month > 12 {
		details = append(details, apperrors.ValidationDetail{Field: "month", Message: "month must be between 1 and 12"})
	}
	if len(details) > 0 {
		return nil, apperrors.NewValidationError("invalid report period", details...)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, uc.location)
	to := from.AddDate(0, 1, 0)

	summaries, quarantined, err := uc.repo.OrderSummariesBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading report for %04d-%02d: %w", year, month, err)
	}

	counts := aggregator.CountByStatus(summaries)
	revenue := aggregator.MonthlyRevenue(summaries, from, uc.location)

	averageTicket := decimal.Zero
	if counts.Completed > 0 {
		averageTicket = revenue.Div(decimal.NewFromInt(int64(counts.Completed)))
	}

	cancellationRate := decimal.Zero
	if total := counts.Total(); total > 0 {
		cancellationRate = decimal.NewFromInt(int64(counts.Cancelled)).
			Mul(decimal.NewFromInt(100)).
			Div(decimal.NewFromInt(int64(total)))
	}

	uc.logger.Debug("monthly report built",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("orders", len(summaries)),
	)

	return &MonthlyReport{
		Year:                 year,
		Month:                month,
		From:                 from,
		To:                   to,
		TotalOrders:          len(summaries),
		OpenOrders:           counts.Open,
		InProgressOrders:     counts.InProgress,
		CompletedOrders:      counts.Completed,
		CancelledOrders:      counts.Cancelled,
		Revenue:              revenue.StringFixed(2),
		RevenueDisplay:       dashboarduc.FormatMoney(uc.currencyPrefix, revenue),
		AverageTicket:        averageTicket.StringFixed(2),
		AverageTicketDisplay: dashboarduc.FormatMoney(uc.currencyPrefix, averageTicket),
		CancellationRate:     cancellationRate.StringFixed(1),
		QuarantinedOrders:    quarantined,
	}, nil
}
