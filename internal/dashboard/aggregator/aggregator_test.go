package aggregator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"techassist/internal/domain"
)

var saoPaulo = time.FixedZone("BRT", -3*60*60)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func summary(status domain.OrderStatus, value string, openedAt time.Time) domain.OrderSummary {
	return domain.OrderSummary{Status: status, Value: money(value), OpenedAt: openedAt}
}

func TestCountByStatus_Scenario(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 10, 0, 0, 0, saoPaulo)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusCompleted, "150.00", ref.AddDate(0, 0, -3)),
		summary(domain.OrderStatusOpen, "80.00", ref.AddDate(0, 0, -1)),
		summary(domain.OrderStatusCompleted, "200.00", ref.AddDate(0, -1, 0)),
	}

	counts := CountByStatus(orders)

	assert.Equal(t, StatusCounts{Open: 1, InProgress: 0, Completed: 2, Cancelled: 0}, counts)
	assert.True(t, money("150.00").Equal(MonthlyRevenue(orders, ref, saoPaulo)))
}

func TestCountByStatus_SumsToLength(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	for size := 0; size < 50; size++ {
		orders := make([]domain.OrderSummary, size)
		for i := range orders {
			orders[i] = summary(domain.OrderStatuses[rng.Intn(len(domain.OrderStatuses))], "10", base)
		}

		counts := CountByStatus(orders)
		assert.Equal(t, size, counts.Open+counts.InProgress+counts.Completed+counts.Cancelled)
		assert.Zero(t, counts.Unrecognized)
	}
}

func TestCountByStatus_UnrecognizedIsNotMisBucketed(t *testing.T) {
	orders := []domain.OrderSummary{
		{Status: domain.OrderStatusOpen},
		{Status: domain.OrderStatus("aberta")},
	}

	counts := CountByStatus(orders)
	assert.Equal(t, 1, counts.Open)
	assert.Equal(t, 1, counts.Unrecognized)
	assert.Equal(t, 2, counts.Total())
}

func TestEmptyInput(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, StatusCounts{}, CountByStatus(nil))
	assert.True(t, MonthlyRevenue(nil, ref, time.UTC).IsZero())
	assert.Equal(t, "0.00", MonthlyRevenue(nil, ref, time.UTC).StringFixed(2))
	assert.Empty(t, RecentOrders(nil, 5))
	assert.NotNil(t, RecentOrders(nil, 5))
}

func TestMonthlyRevenue_NoCompletedInMonth(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusOpen, "100", ref),
		summary(domain.OrderStatusInProgress, "100", ref),
		summary(domain.OrderStatusCancelled, "100", ref),
		summary(domain.OrderStatusCompleted, "100", ref.AddDate(-1, 0, 0)),
		summary(domain.OrderStatusCompleted, "100", ref.AddDate(0, 1, 0)),
	}

	assert.True(t, MonthlyRevenue(orders, ref, time.UTC).IsZero())
}

func TestMonthlyRevenue_SameMonthOtherYearExcluded(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusCompleted, "50", time.Date(2023, time.June, 15, 0, 0, 0, 0, time.UTC)),
		summary(domain.OrderStatusCompleted, "70", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)),
	}

	assert.True(t, money("70").Equal(MonthlyRevenue(orders, ref, time.UTC)))
}

func TestMonthlyRevenue_UsesInjectedCalendar(t *testing.T) {
	// 2024-07-01 01:00 UTC is still 2024-06-30 in São Paulo.
	openedAt := time.Date(2024, time.July, 1, 1, 0, 0, 0, time.UTC)
	ref := time.Date(2024, time.June, 20, 12, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{summary(domain.OrderStatusCompleted, "99.90", openedAt)}

	assert.True(t, money("99.90").Equal(MonthlyRevenue(orders, ref, saoPaulo)))
	assert.True(t, MonthlyRevenue(orders, ref, time.UTC).IsZero())
}

func TestMonthlyRevenue_NegativeValuesPassThrough(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusCompleted, "100", ref),
		summary(domain.OrderStatusCompleted, "-30", ref),
	}

	assert.True(t, money("70").Equal(MonthlyRevenue(orders, ref, time.UTC)))
}

func TestMonthlyRevenue_OrderInvariant(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusCompleted, "0.10", ref),
		summary(domain.OrderStatusCompleted, "0.20", ref.AddDate(0, 0, 1)),
		summary(domain.OrderStatusOpen, "5.00", ref),
		summary(domain.OrderStatusCompleted, "1234.56", ref.AddDate(0, 0, -2)),
		summary(domain.OrderStatusCompleted, "0.30", ref.AddDate(0, 0, 3)),
	}
	want := MonthlyRevenue(orders, ref, time.UTC)
	require.True(t, money("1235.16").Equal(want))

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := make([]domain.OrderSummary, len(orders))
		copy(shuffled, orders)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		assert.True(t, want.Equal(MonthlyRevenue(shuffled, ref, time.UTC)))
	}
}

func TestPureAndIdempotent(t *testing.T) {
	ref := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	orders := []domain.OrderSummary{
		summary(domain.OrderStatusCompleted, "10", ref),
		summary(domain.OrderStatusOpen, "20", ref),
	}
	snapshot := make([]domain.OrderSummary, len(orders))
	copy(snapshot, orders)

	assert.Equal(t, CountByStatus(orders), CountByStatus(orders))
	assert.True(t, MonthlyRevenue(orders, ref, time.UTC).Equal(MonthlyRevenue(orders, ref, time.UTC)))
	assert.Equal(t, snapshot, orders)
}

func enriched(id int64, openedAt time.Time) domain.EnrichedOrder {
	return domain.EnrichedOrder{ID: id, OpenedAt: openedAt, Status: domain.OrderStatusOpen}
}

func TestRecentOrders_FiveMostRecentOfSeven(t *testing.T) {
	base := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	orders := []domain.EnrichedOrder{
		enriched(1, base.AddDate(0, 0, 3)),
		enriched(2, base.AddDate(0, 0, 6)),
		enriched(3, base),
		enriched(4, base.AddDate(0, 0, 5)),
		enriched(5, base.AddDate(0, 0, 1)),
		enriched(6, base.AddDate(0, 0, 4)),
		enriched(7, base.AddDate(0, 0, 2)),
	}
	snapshot := make([]domain.EnrichedOrder, len(orders))
	copy(snapshot, orders)

	recent := RecentOrders(orders, 5)

	require.Len(t, recent, 5)
	ids := make([]int64, len(recent))
	for i, o := range recent {
		ids[i] = o.ID
	}
	assert.Equal(t, []int64{2, 4, 6, 1, 7}, ids)
	assert.Equal(t, snapshot, orders, "input must not be reordered")
}

func TestRecentOrders_TiesBrokenByDescendingID(t *testing.T) {
	at := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.UTC)
	orders := []domain.EnrichedOrder{
		enriched(10, at),
		enriched(30, at),
		enriched(20, at),
		enriched(5, at.Add(time.Hour)),
	}

	recent := RecentOrders(orders, 5)

	require.Len(t, recent, 4)
	assert.Equal(t, int64(5), recent[0].ID)
	assert.Equal(t, int64(30), recent[1].ID)
	assert.Equal(t, int64(20), recent[2].ID)
	assert.Equal(t, int64(10), recent[3].ID)
}

func TestRecentOrders_LengthIsMinOfNAndInput(t *testing.T) {
	base := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	for size := 0; size <= 8; size++ {
		orders := make([]domain.EnrichedOrder, size)
		for i := range orders {
			orders[i] = enriched(int64(i+1), base.Add(time.Duration(i%3)*time.Hour))
		}

		recent := RecentOrders(orders, 5)
		assert.Len(t, recent, min(5, size))
		for i := 1; i < len(recent); i++ {
			assert.False(t, recent[i].OpenedAt.After(recent[i-1].OpenedAt))
		}
	}
}
