package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"techassist/internal/domain"
)

// EnrichedColumns is the column list ScanEnriched expects, in order.
var EnrichedColumns = []string{
	"id", "customer_id", "customer_name", "customer_phone",
	"technician_id", "technician_name", "technician_specialty",
	"status", "problem_description", "diagnosis", "solution",
	"opened_at", "completed_at", "total_value", "warranty_months", "items",
}

// SummaryColumns is the column list ScanSummary expects, in order.
var SummaryColumns = []string{"status", "total_value", "opened_at"}

// ScanEnriched decodes one order_detailed row. A stored status outside the
// known values yields the decoded order together with an error wrapping
// domain.ErrUnknownOrderStatus, so callers can quarantine the row.
func ScanEnriched(rows *sql.Rows) (domain.EnrichedOrder, error) {
	var (
		o         domain.EnrichedOrder
		rawStatus string
		rawItems  []byte
	)
	err := rows.Scan(
		&o.ID, &o.CustomerID, &o.CustomerName, &o.CustomerPhone,
		&o.TechnicianID, &o.TechnicianName, &o.TechnicianSpecialty,
		&rawStatus, &o.ProblemDescription, &o.Diagnosis, &o.Solution,
		&o.OpenedAt, &o.CompletedAt, &o.TotalValue, &o.WarrantyMonths, &rawItems,
	)
	if err != nil {
		return o, err
	}

	o.Items = []domain.EnrichedOrderItem{}
	if len(rawItems) > 0 {
		if err := json.Unmarshal(rawItems, &o.Items); err != nil {
			return o, fmt.Errorf("decoding items of order %d: %w", o.ID, err)
		}
	}

	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return o, fmt.Errorf("order %d: %w", o.ID, err)
	}
	o.Status = status

	return o, nil
}

// ScanSummary decodes the projection the aggregator works on. Unknown
// statuses are reported the same way as in ScanEnriched.
func ScanSummary(rows *sql.Rows) (domain.OrderSummary, error) {
	var (
		s         domain.OrderSummary
		rawStatus string
	)
	if err := rows.Scan(&rawStatus, &s.Value, &s.OpenedAt); err != nil {
		return s, err
	}

	status, err := domain.ParseOrderStatus(rawStatus)
	if err != nil {
		return s, err
	}
	s.Status = status

	return s, nil
}
