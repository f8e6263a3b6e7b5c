package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusOpen      OrderStatus = "open"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusServed    OrderStatus = "served"
	StatusClosed    OrderStatus = "closed"
)

// statusRank orders the lifecycle ladder. Transitions only move forward;
// closed is terminal.
var statusRank = map[OrderStatus]int{
	StatusOpen:      0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusServed:    4,
	StatusClosed:    5,
}

func (s OrderStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) Terminal() bool { return s == StatusClosed }

// CanTransitionTo reports whether the ladder permits moving from s to next.
// Skipping intermediate kitchen states is allowed; regression is not.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// AllowsItemMutation reports whether order lines may still be changed.
// Once the kitchen takes over (preparing and later) the bill is frozen.
func (s OrderStatus) AllowsItemMutation() bool {
	return s == StatusOpen || s == StatusConfirmed
}

type Order struct {
	ID        int64       `json:"id"`
	TableID   int64       `json:"table_id"`
	Status    OrderStatus `json:"status"`
	Notes     string      `json:"notes,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	ClosedAt  *time.Time  `json:"closed_at,omitempty"`
	Table     *Table      `json:"table,omitempty"`
}

// OrderItem is one priced line of an order. UnitPrice is captured when the
// line is created; later catalog price changes never touch existing lines.
type OrderItem struct {
	ID        int64           `json:"id"`
	OrderID   int64           `json:"order_id"`
	ItemID    int64           `json:"item_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	MenuItem  *MenuItem       `json:"menu_item,omitempty"`
}

// OrderWithItems is the authoritative order snapshot the API returns
// after any mutation.
type OrderWithItems struct {
	Order
	Items []OrderItem     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// ItemsTotal recomputes the bill from line subtotals. Callers must use
// this rather than the transported Total when showing or charging money.
func (o *OrderWithItems) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for i := range o.Items {
		total = total.Add(o.Items[i].Subtotal)
	}
	return total
}

// OrderPage is a paginated order listing.
type OrderPage struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
	Limit  int     `json:"limit"`
	Offset int     `json:"offset"`
}

// OrderTotal is the server-side total calculation for one order.
type OrderTotal struct {
	OrderID   int64           `json:"order_id"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}
