package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tableside/internal/models"
)

func (c *Client) GetTables(ctx context.Context) ([]models.Table, error) {
	var out struct {
		Tables []models.Table `json:"tables"`
		Total  int            `json:"total"`
	}
	if err := c.do(ctx, http.MethodGet, "/tables", nil, &out); err != nil {
		return nil, err
	}
	return out.Tables, nil
}

func (c *Client) GetTable(ctx context.Context, id int64) (*models.Table, error) {
	var table models.Table
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tables/%d", id), nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

func (c *Client) GetTableByNumber(ctx context.Context, number int) (*models.Table, error) {
	var table models.Table
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/tables/number/%d", number), nil, &table); err != nil {
		return nil, err
	}
	return &table, nil
}

// ScanQR resolves a QR payload to its table and reports whether an order
// is already open there, saving the binder a second round trip.
func (c *Client) ScanQR(ctx context.Context, qrCode string) (*models.ScanResult, error) {
	var result models.ScanResult
	path := "/tables/scan?qr_code=" + url.QueryEscape(qrCode)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateOrderFromQR is the single-call fast path: resolve the QR and open
// an order on its table in one request.
func (c *Client) CreateOrderFromQR(ctx context.Context, qrCode string) (*models.Order, error) {
	var order models.Order
	path := "/tables/scan/order?qr_code=" + url.QueryEscape(qrCode)
	if err := c.do(ctx, http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
