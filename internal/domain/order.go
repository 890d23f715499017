package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle tag of a service order.
type OrderStatus string

const (
	OrderStatusOpen       OrderStatus = "open"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists every known status in lifecycle order.
var OrderStatuses = []OrderStatus{
	OrderStatusOpen,
	OrderStatusInProgress,
	OrderStatusCompleted,
	OrderStatusCancelled,
}

// ErrUnknownOrderStatus is returned for status values outside OrderStatuses.
var ErrUnknownOrderStatus = errors.New("unknown order status")

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusOpen:       {OrderStatusInProgress, OrderStatusCancelled},
	OrderStatusInProgress: {OrderStatusCompleted, OrderStatusCancelled},
}

// ParseOrderStatus converts a raw value read from the record store or a request
// body. Values outside the four known statuses are rejected.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	s := OrderStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownOrderStatus, raw)
	}
	return s, nil
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusOpen, OrderStatusInProgress, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID                 int64
	CustomerID         int64
	TechnicianID       *int64
	Status             OrderStatus
	ProblemDescription string
	Diagnosis          *string
	Solution           *string
	OpenedAt           time.Time
	CompletedAt        *time.Time
	TotalValue         decimal.Decimal
	WarrantyMonths     *int
	CreatedAt          time.Time
	Items              []OrderItem
}

// OrderSummary is the projection the dashboard aggregates over.
type OrderSummary struct {
	Status   OrderStatus
	Value    decimal.Decimal
	OpenedAt time.Time
}
