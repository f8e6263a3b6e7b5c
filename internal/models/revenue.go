package models

import "github.com/shopspring/decimal"

// Revenue aggregates are read-only reporting payloads; the core never
// derives them locally.

type DailyRevenue struct {
	Date         string          `json:"date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int             `json:"total_orders"`
}

type MonthlyRevenue struct {
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	DailyBreakdown []DailyRevenue  `json:"daily_breakdown"`
}

type RevenueTotal struct {
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalOrders  int             `json:"total_orders"`
}
