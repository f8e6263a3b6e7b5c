package api

import (
	"context"
	"fmt"
	"net/http"

	"tableside/internal/models"
)

func (c *Client) CreateOrder(ctx context.Context, tableID int64) (*models.Order, error) {
	body := map[string]int64{"table_id": tableID}
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/orders", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrderWithItems(ctx context.Context, id int64) (*models.OrderWithItems, error) {
	var order models.OrderWithItems
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/items", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOpenOrderByTable(ctx context.Context, tableID int64) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/table/%d/open", tableID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) GetOrdersByTable(ctx context.Context, tableID int64, limit, offset int) (*models.OrderPage, error) {
	var page models.OrderPage
	path := fmt.Sprintf("/orders/table/%d?limit=%d&offset=%d", tableID, limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetOrdersByStatus feeds the kitchen display: all orders currently in
// one lifecycle state.
func (c *Client) GetOrdersByStatus(ctx context.Context, status models.OrderStatus, limit, offset int) (*models.OrderPage, error) {
	var page models.OrderPage
	path := fmt.Sprintf("/orders/search?status=%s&limit=%d&offset=%d", status, limit, offset)
	if err := c.do(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error) {
	body := map[string]models.OrderStatus{"status": status}
	var order models.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d", id), body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CloseOrder(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/%d/close", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) AddOrderItem(ctx context.Context, req AddOrderItemRequest) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := c.do(ctx, http.MethodPost, "/orders/items", req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) UpdateOrderItem(ctx context.Context, id int64, req UpdateOrderItemRequest) (*models.OrderItem, error) {
	var item models.OrderItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/orders/items/%d", id), req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (c *Client) RemoveOrderItem(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/orders/items/%d", id), nil, nil)
}

func (c *Client) CalculateOrderTotal(ctx context.Context, orderID int64) (*models.OrderTotal, error) {
	var total models.OrderTotal
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/total", orderID), nil, &total); err != nil {
		return nil, err
	}
	return &total, nil
}
