package cart

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrCartNotFound is returned when a user has no cart.
	ErrCartNotFound = errors.New("cart not found")
	// ErrItemNotFound is returned when a line item is not in the cart.
	ErrItemNotFound = errors.New("item not found in cart")
)

// Repository provides access to cart storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new cart repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migrations for the cart tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Cart{}, &CartItem{})
}

// FindByUserID retrieves a user's cart with its items.
func (r *Repository) FindByUserID(userID string) (*Cart, error) {
	var cart Cart
	err := r.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("cart_items.created_at ASC")
	}).First(&cart, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

// GetOrCreate returns the user's cart, creating an empty one if absent.
// The unique index on user_id keeps a concurrent create from producing a
// duplicate; the loser of that race falls back to reading the winner's row.
func (r *Repository) GetOrCreate(userID string) (*Cart, error) {
	cart, err := r.FindByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, ErrCartNotFound) {
		return nil, err
	}

	fresh := &Cart{
		ID:     uuid.New().String(),
		UserID: userID,
		Items:  []CartItem{},
	}
	if createErr := r.db.Create(fresh).Error; createErr != nil {
		if cart, err := r.FindByUserID(userID); err == nil {
			return cart, nil
		}
		return nil, fmt.Errorf("failed to create cart: %w", createErr)
	}
	return fresh, nil
}

// CreateItem appends a new line item.
func (r *Repository) CreateItem(item *CartItem) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create cart item: %w", err)
	}
	return nil
}

// UpdateItemQuantity overwrites a line item's quantity.
func (r *Repository) UpdateItemQuantity(itemID string, quantity int) error {
	result := r.db.Model(&CartItem{}).Where("id = ?", itemID).Update("quantity", quantity)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// DeleteItem removes a line item from a cart. Deleting an absent item is
// not an error.
func (r *Repository) DeleteItem(cartID, itemID string) error {
	if err := r.db.Delete(&CartItem{}, "cart_id = ? AND id = ?", cartID, itemID).Error; err != nil {
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	return nil
}

// ClearItems removes every line item; the cart row itself stays.
func (r *Repository) ClearItems(cartID string) error {
	if err := r.db.Delete(&CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
