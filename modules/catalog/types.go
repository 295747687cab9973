package catalog

import "time"

// CategoryRef is the expanded category reference carried on products.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ProductResponse represents a product in responses.
type ProductResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Slug           string      `json:"slug"`
	Description    string      `json:"description"`
	Price          float64     `json:"price"`
	CompareAtPrice *float64    `json:"compare_at_price,omitempty"`
	Category       CategoryRef `json:"category"`
	Images         []string    `json:"images"`
	Stock          int         `json:"stock"`
	Tags           []string    `json:"tags"`
	Featured       bool        `json:"featured"`
	Rating         float64     `json:"rating"`
	NumReviews     int         `json:"num_reviews"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// ListProductsRequest is the request for listing products.
type ListProductsRequest struct {
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
	Category string `json:"category"` // category slug
	Search   string `json:"search"`
	Sort     string `json:"sort"`
	Featured bool   `json:"featured"`
}

// ListProductsResponse is a page of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
	Page     int               `json:"page"`
	Pages    int               `json:"pages"`
	Total    int64             `json:"total"`
}

// GetProductRequest is the request for getting a product.
type GetProductRequest struct {
	ID string `json:"id"`
}

// CreateProductRequest is the request for creating a product.
type CreateProductRequest struct {
	Name           string   `json:"name"`
	Slug           string   `json:"slug"`
	Description    string   `json:"description"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compare_at_price"`
	CategoryID     string   `json:"category_id"`
	Images         []string `json:"images"`
	Stock          int      `json:"stock"`
	Tags           []string `json:"tags"`
	Featured       bool     `json:"featured"`
}

// UpdateProductRequest is a partial product update; only provided fields
// overwrite the stored values.
type UpdateProductRequest struct {
	ID             string    `json:"id"`
	Name           *string   `json:"name,omitempty"`
	Slug           *string   `json:"slug,omitempty"`
	Description    *string   `json:"description,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	CompareAtPrice *float64  `json:"compare_at_price,omitempty"`
	CategoryID     *string   `json:"category_id,omitempty"`
	Images         *[]string `json:"images,omitempty"`
	Stock          *int      `json:"stock,omitempty"`
	Tags           *[]string `json:"tags,omitempty"`
	Featured       *bool     `json:"featured,omitempty"`
}

// DeleteProductRequest is the request for deleting a product.
type DeleteProductRequest struct {
	ID string `json:"id"`
}

// DeleteProductResponse is the response after deleting a product.
type DeleteProductResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// CategoryResponse represents a category in responses.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListCategoriesRequest is the request for listing categories.
type ListCategoriesRequest struct{}

// ListCategoriesResponse is the response containing all categories.
type ListCategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
	Total      int                `json:"total"`
}

// GetCategoryRequest is the request for getting a category.
type GetCategoryRequest struct {
	ID string `json:"id"`
}

// CreateCategoryRequest is the request for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// UpdateCategoryRequest is a partial category update.
type UpdateCategoryRequest struct {
	ID          string  `json:"id"`
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Image       *string `json:"image,omitempty"`
}

// DeleteCategoryRequest is the request for deleting a category.
type DeleteCategoryRequest struct {
	ID string `json:"id"`
}

// DeleteCategoryResponse is the response after deleting a category.
type DeleteCategoryResponse struct {
	Deleted bool   `json:"deleted"`
	ID      string `json:"id"`
}

// Stock operation outcomes carried in replies so callers can branch on
// them after crossing the service container.
const (
	StockReasonNotFound     = "not_found"
	StockReasonInsufficient = "insufficient_stock"
)

// DecrementStockRequest asks for a conditional stock decrement.
type DecrementStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// DecrementStockResponse reports whether the decrement happened.
type DecrementStockResponse struct {
	Decremented bool   `json:"decremented"`
	Reason      string `json:"reason,omitempty"`
}

// RestoreStockRequest asks for a stock restore (order compensation).
type RestoreStockRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// RestoreStockResponse reports whether the restore happened.
type RestoreStockResponse struct {
	Restored bool `json:"restored"`
}
