package api

import (
	"context"
	"fmt"
	"net/http"

	"tableside/internal/models"
)

func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodPost, "/payments", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) GetPaymentByOrder(ctx context.Context, orderID int64) (*models.Payment, error) {
	var payment models.Payment
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/payments/order/%d", orderID), nil, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
