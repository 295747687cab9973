package order

import (
	"time"
)

// Order statuses. Transitions are admin-controlled and deliberately
// permissive: any known status may replace any other.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
	StatusCancelled  = "cancelled"
)

// ValidStatus reports whether s is one of the known order statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// ShippingAddress is the destination captured on the order.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
}

// Order is an immutable record of a placed order; only the status and
// delivery fields change afterwards, and only through admin action.
type Order struct {
	ID              string          `gorm:"primarykey;size:36" json:"id"`
	UserID          string          `gorm:"index;size:36;not null" json:"user_id"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress ShippingAddress `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	PaymentMethod   string          `gorm:"not null" json:"payment_method"`
	ItemsPrice      float64         `gorm:"not null" json:"items_price"`
	ShippingPrice   float64         `gorm:"not null" json:"shipping_price"`
	TaxPrice        float64         `gorm:"not null" json:"tax_price"`
	TotalPrice      float64         `gorm:"not null" json:"total_price"`
	Status          string          `gorm:"not null;default:pending" json:"status"`
	IsPaid          bool            `gorm:"not null;default:false" json:"is_paid"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	IsDelivered     bool            `gorm:"not null;default:false" json:"is_delivered"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TableName returns the table name for Order.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is a denormalized snapshot of a product at order time,
// independent of later catalog changes.
type OrderItem struct {
	ID        string  `gorm:"primarykey;size:36" json:"id"`
	OrderID   string  `gorm:"index;size:36;not null" json:"order_id"`
	ProductID string  `gorm:"size:36;not null" json:"product_id"`
	Name      string  `gorm:"not null" json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

// TableName returns the table name for OrderItem.
func (OrderItem) TableName() string {
	return "order_items"
}
