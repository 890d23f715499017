package controller

import (
	"time"

	"github.com/shopspring/decimal"

	"techassist/internal/domain"
)

type CreateOrderRequest struct {
	CustomerID         int64              `json:"customerId"`
	TechnicianID       *int64             `json:"technicianId"`
	ProblemDescription string             `json:"problemDescription"`
	Diagnosis          *string            `json:"diagnosis"`
	WarrantyMonths     *int               `json:"warrantyMonths"`
	Items              []OrderItemRequest `json:"items"`
}

type OrderItemRequest struct {
	ServiceID int64            `json:"serviceId"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
}

type StatusRequest struct {
	Status    string  `json:"status"`
	Diagnosis *string `json:"diagnosis"`
	Solution  *string `json:"solution"`
}

type OrderResponse struct {
	ID                  int64               `json:"id"`
	CustomerID          int64               `json:"customerId"`
	CustomerName        string              `json:"customerName"`
	CustomerPhone       string              `json:"customerPhone"`
	TechnicianID        *int64              `json:"technicianId"`
	TechnicianName      *string             `json:"technicianName"`
	TechnicianSpecialty *string             `json:"technicianSpecialty"`
	Status              string              `json:"status"`
	ProblemDescription  string              `json:"problemDescription"`
	Diagnosis           *string             `json:"diagnosis"`
	Solution            *string             `json:"solution"`
	OpenedAt            time.Time           `json:"openedAt"`
	CompletedAt         *time.Time          `json:"completedAt"`
	TotalValue          string              `json:"totalValue"`
	WarrantyMonths      *int                `json:"warrantyMonths"`
	Items               []OrderItemResponse `json:"items"`
}

type OrderItemResponse struct {
	ServiceName string `json:"serviceName"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Subtotal    string `json:"subtotal"`
}

func toResponse(o domain.EnrichedOrder) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ServiceName: item.ServiceName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal.StringFixed(2),
		}
	}

	return OrderResponse{
		ID:                  o.ID,
		CustomerID:          o.CustomerID,
		CustomerName:        o.CustomerName,
		CustomerPhone:       o.CustomerPhone,
		TechnicianID:        o.TechnicianID,
		TechnicianName:      o.TechnicianName,
		TechnicianSpecialty: o.TechnicianSpecialty,
		Status:              string(o.Status),
		ProblemDescription:  o.ProblemDescription,
		Diagnosis:           o.Diagnosis,
		Solution:            o.Solution,
		OpenedAt:            o.OpenedAt,
		CompletedAt:         o.CompletedAt,
		TotalValue:          o.TotalValue.StringFixed(2),
		WarrantyMonths:      o.WarrantyMonths,
		Items:               items,
	}
}
