package api

import (
	"context"

	"github.com/shopspring/decimal"

	"tableside/internal/models"
)

// AddOrderItemRequest creates a new line, or accumulates into an existing
// one for the same menu item. The server decides which; callers re-read
// the order afterwards instead of assuming.
type AddOrderItemRequest struct {
	OrderID  int64  `json:"order_id"`
	ItemID   int64  `json:"item_id"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type UpdateOrderItemRequest struct {
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes,omitempty"`
}

type CreatePaymentRequest struct {
	OrderID int64                `json:"order_id"`
	Amount  decimal.Decimal      `json:"amount"`
	Method  models.PaymentMethod `json:"method"`
}

// Gateway is the slice of the POS API the reconciliation core depends on.
// *Client implements it; tests substitute a mock.
type Gateway interface {
	// Tables / session binding
	ScanQR(ctx context.Context, qrCode string) (*models.ScanResult, error)
	GetTable(ctx context.Context, id int64) (*models.Table, error)
	CreateOrderFromQR(ctx context.Context, qrCode string) (*models.Order, error)

	// Orders
	CreateOrder(ctx context.Context, tableID int64) (*models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderWithItems(ctx context.Context, id int64) (*models.OrderWithItems, error)
	GetOpenOrderByTable(ctx context.Context, tableID int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)
	CloseOrder(ctx context.Context, id int64) (*models.Order, error)

	// Order items
	AddOrderItem(ctx context.Context, req AddOrderItemRequest) (*models.OrderItem, error)
	UpdateOrderItem(ctx context.Context, id int64, req UpdateOrderItemRequest) (*models.OrderItem, error)
	RemoveOrderItem(ctx context.Context, id int64) error
	CalculateOrderTotal(ctx context.Context, orderID int64) (*models.OrderTotal, error)

	// Payments
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (*models.Payment, error)
}

var _ Gateway = (*Client)(nil)
