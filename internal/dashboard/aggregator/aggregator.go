// Package aggregator derives dashboard statistics from in-memory order data.
// Every function is pure: no I/O, no clock, and inputs are never modified.
package aggregator

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"techassist/internal/domain"
)

type StatusCounts struct {
	Open       int
	InProgress int
	Completed  int
	Cancelled  int
	// Unrecognized counts statuses outside the known four. Orders decoded by
	// the record store layer never land here.
	Unrecognized int
}

func (c StatusCounts) Total() int {
	return c.Open + c.InProgress + c.Completed + c.Cancelled + c.Unrecognized
}

func CountByStatus(orders []domain.OrderSummary) StatusCounts {
	var counts StatusCounts
	for _, o := range orders {
		switch o.Status {
		case domain.OrderStatusOpen:
			counts.Open++
		case domain.OrderStatusInProgress:
			counts.InProgress++
		case domain.OrderStatusCompleted:
			counts.Completed++
		case domain.OrderStatusCancelled:
			counts.Cancelled++
		default:
			counts.Unrecognized++
		}
	}
	return counts
}

// MonthlyRevenue sums the value of completed orders opened in the same
// calendar month and year as ref. Both instants are read in loc; a nil loc
// means UTC.
func MonthlyRevenue(orders []domain.OrderSummary, ref time.Time, loc *time.Location) decimal.Decimal {
	if loc == nil {
		loc = time.UTC
	}
	refYear, refMonth, _ := ref.In(loc).Date()

	total := decimal.Zero
	for _, o := range orders {
		if o.Status != domain.OrderStatusCompleted {
			continue
		}
		year, month, _ := o.OpenedAt.In(loc).Date()
		if year == refYear && month == refMonth {
			total = total.Add(o.Value)
		}
	}
	return total
}

// RecentOrders returns at most n orders, most recently opened first. Orders
// opened at the same instant are ordered by descending id.
func RecentOrders(orders []domain.EnrichedOrder, n int) []domain.EnrichedOrder {
	if n <= 0 || len(orders) == 0 {
		return []domain.EnrichedOrder{}
	}

	sorted := make([]domain.EnrichedOrder, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].OpenedAt.Equal(sorted[j].OpenedAt) {
			return sorted[i].OpenedAt.After(sorted[j].OpenedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
