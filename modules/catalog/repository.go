package catalog

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrSlugExists is returned when a slug is already taken.
	ErrSlugExists = errors.New("slug already exists")
	// ErrInsufficientStock is returned when a conditional decrement
	// finds less stock than requested.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrCategoryInUse is returned when deleting a category that
	// products still reference.
	ErrCategoryInUse = errors.New("category is referenced by products")
)

// ProductQuery describes the filters and paging for a product listing.
type ProductQuery struct {
	CategoryID string
	Search     string
	Featured   bool
	OrderBy    string
	Offset     int
	Limit      int
}

// Repository provides access to product and category storage.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new catalog repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate runs the schema migrations for the catalog tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&Category{}, &Product{})
}

// CreateProduct saves a new product.
func (r *Repository) CreateProduct(product *Product) error {
	if err := r.db.Create(product).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// FindProductByID retrieves a product with its category expanded.
func (r *Repository) FindProductByID(id string) (*Product, error) {
	var product Product
	if err := r.db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

// FindProducts retrieves a page of products matching the query, plus the
// total match count.
func (r *Repository) FindProducts(q ProductQuery) ([]*Product, int64, error) {
	tx := r.db.Model(&Product{})

	if q.CategoryID != "" {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if q.Search != "" {
		// Tags are serialized as a JSON array; a LIKE over the text
		// matches any tag, which is what the storefront search wants.
		term := "%" + strings.ToLower(q.Search) + "%"
		tx = tx.Where(
			"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ?",
			term, term, term,
		)
	}
	if q.Featured {
		tx = tx.Where("featured = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []*Product
	if err := tx.Preload("Category").
		Order(q.OrderBy).
		Offset(q.Offset).
		Limit(q.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct persists changes to an existing product.
func (r *Repository) UpdateProduct(product *Product) error {
	result := r.db.Model(&Product{}).Where("id = ?", product.ID).Select(
		"name", "slug", "description", "price", "compare_at_price",
		"category_id", "images", "stock", "tags", "featured",
	).Updates(product)
	if err := result.Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DeleteProduct removes a product by ID.
func (r *Repository) DeleteProduct(id string) error {
	result := r.db.Delete(&Product{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// DecrementStock atomically decrements a product's stock by quantity,
// but only when at least that much stock remains. The conditional update
// closes the check-then-decrement race between concurrent orders.
func (r *Repository) DecrementStock(id string, quantity int) error {
	result := r.db.Model(&Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if result.RowsAffected == 0 {
		// Distinguish a vanished product from a stock shortfall.
		var count int64
		if err := r.db.Model(&Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check product: %w", err)
		}
		if count == 0 {
			return ErrProductNotFound
		}
		return ErrInsufficientStock
	}
	return nil
}

// RestoreStock adds quantity back to a product's stock. Used to compensate
// a partially decremented order.
func (r *Repository) RestoreStock(id string, quantity int) error {
	result := r.db.Model(&Product{}).
		Where("id = ?", id).
		UpdateColumn("stock", gorm.Expr("stock + ?", quantity))
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to restore stock: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

// CreateCategory saves a new category.
func (r *Repository) CreateCategory(category *Category) error {
	if err := r.db.Create(category).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *Repository) FindCategoryByID(id string) (*Category, error) {
	var category Category
	if err := r.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindCategoryBySlug retrieves a category by its slug.
func (r *Repository) FindCategoryBySlug(slug string) (*Category, error) {
	var category Category
	if err := r.db.First(&category, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category: %w", err)
	}
	return &category, nil
}

// FindCategories retrieves all categories sorted by name.
func (r *Repository) FindCategories() ([]*Category, error) {
	var categories []*Category
	if err := r.db.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory persists changes to an existing category.
func (r *Repository) UpdateCategory(category *Category) error {
	result := r.db.Model(&Category{}).Where("id = ?", category.ID).Select(
		"name", "slug", "description", "image",
	).Updates(category)
	if err := result.Error; err != nil {
		if isUniqueViolation(err) {
			return ErrSlugExists
		}
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// DeleteCategory removes a category, refusing while products reference it.
func (r *Repository) DeleteCategory(id string) error {
	var referencing int64
	if err := r.db.Model(&Product{}).Where("category_id = ?", id).Count(&referencing).Error; err != nil {
		return fmt.Errorf("failed to count category products: %w", err)
	}
	if referencing > 0 {
		return ErrCategoryInUse
	}

	result := r.db.Delete(&Category{}, "id = ?", id)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a unique constraint failure.
// SQLite reports these as plain errors, so the message is inspected in
// addition to GORM's translated error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
