package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnrichedOrder is a row of the order_detailed view: an order joined with the
// names of its customer, technician and services. It is never written back.
type EnrichedOrder struct {
	ID                  int64
	CustomerID          int64
	CustomerName        string
	CustomerPhone       string
	TechnicianID        *int64
	TechnicianName      *string
	TechnicianSpecialty *string
	Status              OrderStatus
	ProblemDescription  string
	Diagnosis           *string
	Solution            *string
	OpenedAt            time.Time
	CompletedAt         *time.Time
	TotalValue          decimal.Decimal
	WarrantyMonths      *int
	Items               []EnrichedOrderItem
}

type EnrichedOrderItem struct {
	ServiceName string          `json:"service_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}
