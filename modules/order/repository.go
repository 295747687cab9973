package order

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// Repository provides access to order storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new order repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migrations for the order tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Order{}, &OrderItem{})
}

// Create saves a new order with its line items.
func (r *Repository) Create(order *Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// FindByID retrieves an order with its items.
func (r *Repository) FindByID(id string) (*Order, error) {
	var order Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

// FindByUserID retrieves a user's orders, newest first.
func (r *Repository) FindByUserID(userID string) ([]*Order, error) {
	var orders []*Order
	if err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// FindAll retrieves every order, newest first.
func (r *Repository) FindAll() ([]*Order, error) {
	var orders []*Order
	if err := r.db.Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites the status and delivery fields of an order.
func (r *Repository) UpdateStatus(order *Order) error {
	result := r.db.Model(&Order{}).Where("id = ?", order.ID).Select(
		"status", "is_delivered", "delivered_at",
	).Updates(order)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
