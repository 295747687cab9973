package order

import (
	"time"
)

// OrderItemInput is a requested line item: the product reference, the
// quantity, and the cart's snapshot price.
type OrderItemInput struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// PlaceOrderRequest is the request for placing an order.
type PlaceOrderRequest struct {
	UserID          string           `json:"user_id"`
	OrderItems      []OrderItemInput `json:"order_items"`
	ShippingAddress ShippingAddress  `json:"shipping_address"`
	PaymentMethod   string           `json:"payment_method"`
}

// OrderItemResponse represents a line item snapshot in responses.
type OrderItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// OrderOwner is the expanded owner reference on admin listings.
type OrderOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// OrderResponse represents an order in responses.
type OrderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"user_id"`
	User            *OrderOwner         `json:"user,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	ShippingAddress ShippingAddress     `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	ItemsPrice      float64             `json:"items_price"`
	ShippingPrice   float64             `json:"shipping_price"`
	TaxPrice        float64             `json:"tax_price"`
	TotalPrice      float64             `json:"total_price"`
	Status          string              `json:"status"`
	IsPaid          bool                `json:"is_paid"`
	PaidAt          *time.Time          `json:"paid_at,omitempty"`
	IsDelivered     bool                `json:"is_delivered"`
	DeliveredAt     *time.Time          `json:"delivered_at,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// MyOrdersRequest is the request for listing the caller's orders.
type MyOrdersRequest struct {
	UserID string `json:"user_id"`
}

// OrderListResponse is a list of orders, newest first.
type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int             `json:"total"`
}

// GetOrderRequest is the request for fetching one order. The caller
// identity is needed for the ownership check.
type GetOrderRequest struct {
	OrderID string `json:"order_id"`
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// AllOrdersRequest is the admin request for listing every order.
type AllOrdersRequest struct{}

// UpdateStatusRequest is the admin request for changing an order status.
type UpdateStatusRequest struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}
