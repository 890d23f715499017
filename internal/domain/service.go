package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an entry of the catalogue of billable work.
type Service struct {
	ID          int64
	Name        string
	Description *string
	Price       decimal.Decimal
	CreatedAt   time.Time
}
