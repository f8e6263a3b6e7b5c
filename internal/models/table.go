package models

import "time"

type Table struct {
	ID          int64     `json:"id"`
	TableNumber int       `json:"table_number"`
	QRCode      string    `json:"qr_code"`
	Seating     int       `json:"seating"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ScanResult is what the QR scan endpoint reports: the table plus
// whether an order is already open on it.
type ScanResult struct {
	TableID      int64  `json:"table_id"`
	Table        Table  `json:"table"`
	HasOpenOrder bool   `json:"has_open_order"`
	OpenOrder    *Order `json:"open_order,omitempty"`
}
