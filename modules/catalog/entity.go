package catalog

import (
	"time"
)

// Product represents a sellable item in the catalog.
// Stock is the only field mutated outside admin flows: order placement
// decrements it through the conditional stock operations in the repository.
type Product struct {
	ID             string    `gorm:"primarykey;size:36" json:"id"`
	Name           string    `gorm:"size:100;not null" json:"name"`
	Slug           string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description    string    `gorm:"size:2000;not null" json:"description"`
	Price          float64   `gorm:"not null" json:"price"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty"`
	CategoryID     string    `gorm:"size:36;index;not null" json:"category_id"`
	Category       Category  `gorm:"foreignKey:CategoryID" json:"category"`
	Images         []string  `gorm:"serializer:json" json:"images"`
	Stock          int       `gorm:"not null;default:0" json:"stock"`
	Tags           []string  `gorm:"serializer:json" json:"tags"`
	Featured       bool      `gorm:"not null;default:false" json:"featured"`
	Rating         float64   `gorm:"not null;default:0" json:"rating"`
	NumReviews     int       `gorm:"not null;default:0" json:"num_reviews"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName returns the table name for Product.
func (Product) TableName() string {
	return "products"
}

// Category groups products. Products reference it by CategoryID.
type Category struct {
	ID          string    `gorm:"primarykey;size:36" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"size:500" json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName returns the table name for Category.
func (Category) TableName() string {
	return "categories"
}
