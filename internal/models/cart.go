package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is a client-local staging line: it mirrors a prospective
// OrderItem before the server has acknowledged it. TempID exists only on
// this terminal; once the server returns the real OrderItem the staged
// line is discarded in favor of the authoritative one.
type CartItem struct {
	TempID    string          `json:"temp_id"`
	ItemID    int64           `json:"item_id"`
	Name      string          `json:"name,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Notes     string          `json:"notes,omitempty"`
	MenuItem  *MenuItem       `json:"menu_item,omitempty"`
}

// NewCartItem stages a menu item at the given quantity, capturing the
// catalog price at add time.
func NewCartItem(item MenuItem, quantity int, notes string) CartItem {
	return CartItem{
		TempID:    uuid.NewString(),
		ItemID:    item.ID,
		Name:      item.Name,
		Quantity:  quantity,
		UnitPrice: item.Price,
		Subtotal:  item.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Notes:     notes,
		MenuItem:  &item,
	}
}
