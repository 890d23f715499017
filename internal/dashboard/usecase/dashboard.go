package usecase

import "time"

// Dashboard is the view-model rendered by the home view.
type Dashboard struct {
	OpenOrders            int           `json:"openOrders"`
	InProgressOrders      int           `json:"inProgressOrders"`
	CompletedOrders       int           `json:"completedOrders"`
	CancelledOrders       int           `json:"cancelledOrders"`
	MonthlyRevenue        string        `json:"monthlyRevenue"`
	MonthlyRevenueDisplay string        `json:"monthlyRevenueDisplay"`
	TotalCustomers        int           `json:"totalCustomers"`
	TotalTechnicians      int           `json:"totalTechnicians"`
	RecentOrders          []RecentOrder `json:"recentOrders"`
	ReferenceMonth        string        `json:"referenceMonth"`
	QuarantinedOrders     int           `json:"quarantinedOrders"`
}

type RecentOrder struct {
	ID                 int64     `json:"id"`
	CustomerName       string    `json:"customerName"`
	ProblemDescription string    `json:"problemDescription"`
	Status             string    `json:"status"`
	TotalValue         string    `json:"totalValue"`
	OpenedAt           time.Time `json:"openedAt"`
}
