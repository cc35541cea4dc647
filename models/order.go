package models

import "time"

type OrderStatus string

const (
	// Checkout only ever creates Pending orders; the fulfilment process
	// moves them on from there.
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// ValidOrderStatus reports whether s is one of the closed set of statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is one checkout. IDs look like "ORD-12345678-042".
type Order struct {
	ID        string      `gorm:"primaryKey;size:32" json:"id"`
	UserID    string      `gorm:"not null;index" json:"user_id"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Shipping  float64     `json:"shipping"`
	Total     float64     `json:"total"`
	Status    OrderStatus `gorm:"type:VARCHAR(20);default:'Pending'" json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// OrderItem snapshots the unit price at order time; later catalogue price
// edits must not change historical orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	OrderID   string  `gorm:"size:32;index" json:"order_id"`
	ProductID string  `gorm:"size:32;not null" json:"product_id"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
}
