package cart

import (
	"time"
)

// Cart holds a user's pending line items. At most one cart exists per
// user; the unique index backs the get-or-create upsert.
type Cart struct {
	ID        string     `gorm:"primarykey;size:36" json:"id"`
	UserID    string     `gorm:"uniqueIndex;size:36;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName returns the table name for Cart.
func (Cart) TableName() string {
	return "carts"
}

// CartItem is a line item: product reference, quantity and the unit price
// captured when the item was added.
type CartItem struct {
	ID        string    `gorm:"primarykey;size:36" json:"id"`
	CartID    string    `gorm:"index;size:36;not null" json:"cart_id"`
	ProductID string    `gorm:"size:36;not null" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Price     float64   `gorm:"not null" json:"price"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for CartItem.
func (CartItem) TableName() string {
	return "cart_items"
}
