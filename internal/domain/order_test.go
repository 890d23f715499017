package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrderStatus(t *testing.T) {
	for _, s := range OrderStatuses {
		parsed, err := ParseOrderStatus(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, parsed)
	}

	tests := []string{"", "aberta", "OPEN", "done", "in progress"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseOrderStatus(raw)
			assert.ErrorIs(t, err, ErrUnknownOrderStatus)
		})
	}
}

func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusOpen, OrderStatusInProgress, true},
		{OrderStatusOpen, OrderStatusCancelled, true},
		{OrderStatusOpen, OrderStatusCompleted, false},
		{OrderStatusInProgress, OrderStatusCompleted, true},
		{OrderStatusInProgress, OrderStatusCancelled, true},
		{OrderStatusInProgress, OrderStatusOpen, false},
		{OrderStatusCompleted, OrderStatusOpen, false},
		{OrderStatusCompleted, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusOpen, false},
		{OrderStatusOpen, OrderStatusOpen, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.False(t, OrderStatusOpen.Terminal())
	assert.False(t, OrderStatusInProgress.Terminal())
	assert.True(t, OrderStatusCompleted.Terminal())
	assert.True(t, OrderStatusCancelled.Terminal())
}

func TestLineSubtotalAndSum(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("49.90")},
		{Quantity: 1, UnitPrice: decimal.RequireFromString("120.00")},
	}
	for i := range items {
		items[i].Subtotal = LineSubtotal(items[i].Quantity, items[i].UnitPrice)
	}

	assert.True(t, decimal.RequireFromString("99.80").Equal(items[0].Subtotal))
	assert.True(t, decimal.RequireFromString("219.80").Equal(SumSubtotals(items)))
	assert.True(t, SumSubtotals(nil).IsZero())
}
