package api

import (
	"context"
	"fmt"
	"net/http"

	"tableside/internal/models"
)

// Revenue reporting endpoints. Read-only; nothing in the reconciliation
// core depends on them.

func (c *Client) GetDailyRevenue(ctx context.Context, date string) (*models.DailyRevenue, error) {
	var rev models.DailyRevenue
	if err := c.do(ctx, http.MethodGet, "/revenue/daily?date="+date, nil, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

func (c *Client) GetMonthlyRevenue(ctx context.Context, year, month int) (*models.MonthlyRevenue, error) {
	var rev models.MonthlyRevenue
	path := fmt.Sprintf("/revenue/monthly?year=%d&month=%d", year, month)
	if err := c.do(ctx, http.MethodGet, path, nil, &rev); err != nil {
		return nil, err
	}
	return &rev, nil
}

func (c *Client) GetDailyRevenueRange(ctx context.Context, startDate, endDate string) ([]models.DailyRevenue, error) {
	var revs []models.DailyRevenue
	path := fmt.Sprintf("/revenue/daily/range?start_date=%s&end_date=%s", startDate, endDate)
	if err := c.do(ctx, http.MethodGet, path, nil, &revs); err != nil {
		return nil, err
	}
	return revs, nil
}

func (c *Client) GetTotalRevenue(ctx context.Context, startDate, endDate string) (*models.RevenueTotal, error) {
	var total models.RevenueTotal
	path := fmt.Sprintf("/revenue/total?start_date=%s&end_date=%s", startDate, endDate)
	if err := c.do(ctx, http.MethodGet, path, nil, &total); err != nil {
		return nil, err
	}
	return &total, nil
}
