package cart

// CartProduct is the expanded product reference carried on line items.
// Nil when the product has been removed from the catalog since the item
// was added.
type CartProduct struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	Slug   string   `json:"slug"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
	Stock  int      `json:"stock"`
}

// CartItemResponse represents a line item with its product expanded.
type CartItemResponse struct {
	ID       string       `json:"id"`
	Product  *CartProduct `json:"product"`
	Quantity int          `json:"quantity"`
	Price    float64      `json:"price"`
}

// CartResponse represents a cart in responses.
type CartResponse struct {
	ID     string             `json:"id"`
	UserID string             `json:"user_id"`
	Items  []CartItemResponse `json:"items"`
}

// GetCartRequest is the request for the get-or-create cart operation.
type GetCartRequest struct {
	UserID string `json:"user_id"`
}

// AddItemRequest is the request for adding a line item.
type AddItemRequest struct {
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// UpdateItemRequest is the request for changing a line item quantity.
type UpdateItemRequest struct {
	UserID   string `json:"user_id"`
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// RemoveItemRequest is the request for removing a line item.
type RemoveItemRequest struct {
	UserID string `json:"user_id"`
	ItemID string `json:"item_id"`
}

// ClearCartRequest is the request for emptying a cart.
type ClearCartRequest struct {
	UserID string `json:"user_id"`
}

// ClearCartResponse acknowledges a cleared cart.
type ClearCartResponse struct {
	Cleared bool `json:"cleared"`
}
