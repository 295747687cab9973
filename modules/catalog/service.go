package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/jngonzales/E-Commerce/modules/cache"
	"golang.org/x/sync/singleflight"
)

const (
	defaultPage  = 1
	defaultLimit = 12
)

// Validation errors for product and category mutations.
var (
	ErrNameRequired        = errors.New("name is required")
	ErrDescriptionRequired = errors.New("description is required")
	ErrCategoryRequired    = errors.New("category is required")
	ErrNegativePrice       = errors.New("price must be non-negative")
	ErrNegativeStock       = errors.New("stock must be non-negative")
	ErrCategoryExists      = errors.New("category already exists")
	ErrProductSlugExists   = errors.New("product slug already exists")
)

// Service implements catalog operations with cache-aside reads.
// A nil cache disables caching; reads then go straight to the database.
type Service struct {
	repo    *Repository
	cache   *cache.Cache
	sfGroup singleflight.Group // prevents cache stampede on product reads
}

// NewService creates a new catalog service.
func NewService(repo *Repository, c *cache.Cache) *Service {
	return &Service{
		repo:  repo,
		cache: c,
	}
}

// ListProducts returns a page of products matching the filters.
// An unknown category slug yields an empty page, not an error.
func (s *Service) ListProducts(ctx context.Context, req ListProductsRequest) (ListProductsResponse, error) {
	page := req.Page
	if page < 1 {
		page = defaultPage
	}
	limit := req.Limit
	if limit < 1 {
		limit = defaultLimit
	}

	cacheKey := fmt.Sprintf("products:%d:%d:%s:%s:%s:%t",
		page, limit, req.Category, req.Search, req.Sort, req.Featured)

	var cached ListProductsResponse
	if found := s.cacheGet(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	query := ProductQuery{
		Search:   req.Search,
		Featured: req.Featured,
		OrderBy:  orderClause(req.Sort),
		Offset:   (page - 1) * limit,
		Limit:    limit,
	}

	if req.Category != "" {
		category, err := s.repo.FindCategoryBySlug(req.Category)
		if err != nil {
			if errors.Is(err, ErrCategoryNotFound) {
				return ListProductsResponse{
					Products: []ProductResponse{},
					Page:     page,
					Pages:    0,
					Total:    0,
				}, nil
			}
			return ListProductsResponse{}, err
		}
		query.CategoryID = category.ID
	}

	products, total, err := s.repo.FindProducts(query)
	if err != nil {
		return ListProductsResponse{}, err
	}

	resp := ListProductsResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Page:     page,
		Pages:    int((total + int64(limit) - 1) / int64(limit)),
		Total:    total,
	}
	for _, p := range products {
		resp.Products = append(resp.Products, toProductResponse(p))
	}

	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// GetProduct retrieves a single product by ID.
func (s *Service) GetProduct(ctx context.Context, id string) (ProductResponse, error) {
	cacheKey := "product:" + id

	var cached ProductResponse
	if found := s.cacheGet(ctx, cacheKey, &cached); found {
		return cached, nil
	}

	val, err, _ := s.sfGroup.Do(cacheKey, func() (any, error) {
		return s.repo.FindProductByID(id)
	})
	if err != nil {
		return ProductResponse{}, err
	}

	resp := toProductResponse(val.(*Product))
	s.cacheSet(ctx, cacheKey, resp)
	return resp, nil
}

// CreateProduct validates and saves a new product.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (ProductResponse, error) {
	if req.Name == "" {
		return ProductResponse{}, ErrNameRequired
	}
	if req.Description == "" {
		return ProductResponse{}, ErrDescriptionRequired
	}
	if req.Price < 0 {
		return ProductResponse{}, ErrNegativePrice
	}
	if req.CompareAtPrice != nil && *req.CompareAtPrice < 0 {
		return ProductResponse{}, ErrNegativePrice
	}
	if req.Stock < 0 {
		return ProductResponse{}, ErrNegativeStock
	}
	if req.CategoryID == "" {
		return ProductResponse{}, ErrCategoryRequired
	}

	category, err := s.repo.FindCategoryByID(req.CategoryID)
	if err != nil {
		return ProductResponse{}, err
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	product := &Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Slug:           strings.ToLower(slug),
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		CategoryID:     category.ID,
		Images:         req.Images,
		Stock:          req.Stock,
		Tags:           req.Tags,
		Featured:       req.Featured,
	}

	if err := s.repo.CreateProduct(product); err != nil {
		if errors.Is(err, ErrSlugExists) {
			return ProductResponse{}, ErrProductSlugExists
		}
		return ProductResponse{}, err
	}
	product.Category = *category

	s.invalidateProducts(ctx)
	return toProductResponse(product), nil
}

// UpdateProduct applies a partial update; only provided fields overwrite.
func (s *Service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (ProductResponse, error) {
	product, err := s.repo.FindProductByID(req.ID)
	if err != nil {
		return ProductResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return ProductResponse{}, ErrNameRequired
		}
		product.Name = *req.Name
	}
	if req.Slug != nil {
		product.Slug = strings.ToLower(*req.Slug)
	}
	if req.Description != nil {
		if *req.Description == "" {
			return ProductResponse{}, ErrDescriptionRequired
		}
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return ProductResponse{}, ErrNegativePrice
		}
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		if *req.CompareAtPrice < 0 {
			return ProductResponse{}, ErrNegativePrice
		}
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.CategoryID != nil {
		category, err := s.repo.FindCategoryByID(*req.CategoryID)
		if err != nil {
			return ProductResponse{}, err
		}
		product.CategoryID = category.ID
		product.Category = *category
	}
	if req.Images != nil {
		product.Images = *req.Images
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return ProductResponse{}, ErrNegativeStock
		}
		product.Stock = *req.Stock
	}
	if req.Tags != nil {
		product.Tags = *req.Tags
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}

	if err := s.repo.UpdateProduct(product); err != nil {
		if errors.Is(err, ErrSlugExists) {
			return ProductResponse{}, ErrProductSlugExists
		}
		return ProductResponse{}, err
	}

	s.invalidateProducts(ctx)
	return toProductResponse(product), nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(id); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

// DecrementStock performs the atomic conditional decrement used by order
// placement.
func (s *Service) DecrementStock(ctx context.Context, productID string, quantity int) error {
	if err := s.repo.DecrementStock(productID, quantity); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

// RestoreStock compensates a decrement after a failed order.
func (s *Service) RestoreStock(ctx context.Context, productID string, quantity int) error {
	if err := s.repo.RestoreStock(productID, quantity); err != nil {
		return err
	}
	s.invalidateProducts(ctx)
	return nil
}

// ListCategories returns all categories sorted by name.
func (s *Service) ListCategories(_ context.Context) (ListCategoriesResponse, error) {
	categories, err := s.repo.FindCategories()
	if err != nil {
		return ListCategoriesResponse{}, err
	}

	resp := ListCategoriesResponse{
		Categories: make([]CategoryResponse, 0, len(categories)),
		Total:      len(categories),
	}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, toCategoryResponse(c))
	}
	return resp, nil
}

// GetCategory retrieves a single category by ID.
func (s *Service) GetCategory(_ context.Context, id string) (CategoryResponse, error) {
	category, err := s.repo.FindCategoryByID(id)
	if err != nil {
		return CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

// CreateCategory validates and saves a new category.
func (s *Service) CreateCategory(_ context.Context, req CreateCategoryRequest) (CategoryResponse, error) {
	if req.Name == "" {
		return CategoryResponse{}, ErrNameRequired
	}

	slug := req.Slug
	if slug == "" {
		slug = slugify(req.Name)
	}

	category := &Category{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Slug:        strings.ToLower(slug),
		Description: req.Description,
		Image:       req.Image,
	}

	if err := s.repo.CreateCategory(category); err != nil {
		if errors.Is(err, ErrSlugExists) {
			return CategoryResponse{}, ErrCategoryExists
		}
		return CategoryResponse{}, err
	}
	return toCategoryResponse(category), nil
}

// UpdateCategory applies a partial update to a category.
func (s *Service) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (CategoryResponse, error) {
	category, err := s.repo.FindCategoryByID(req.ID)
	if err != nil {
		return CategoryResponse{}, err
	}

	if req.Name != nil {
		if *req.Name == "" {
			return CategoryResponse{}, ErrNameRequired
		}
		category.Name = *req.Name
	}
	if req.Slug != nil {
		category.Slug = strings.ToLower(*req.Slug)
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Image != nil {
		category.Image = *req.Image
	}

	if err := s.repo.UpdateCategory(category); err != nil {
		if errors.Is(err, ErrSlugExists) {
			return CategoryResponse{}, ErrCategoryExists
		}
		return CategoryResponse{}, err
	}

	// Category name/slug appear in cached product listings.
	s.invalidateProducts(ctx)
	return toCategoryResponse(category), nil
}

// DeleteCategory removes a category unless products still reference it.
func (s *Service) DeleteCategory(_ context.Context, id string) error {
	return s.repo.DeleteCategory(id)
}

// cacheGet reads a cached value, tolerating cache failures.
func (s *Service) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	found, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		log.Printf("[catalog] cache get failed for %s: %v", key, err)
		return false
	}
	return found
}

// cacheSet writes a cached value, tolerating cache failures.
func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value); err != nil {
		log.Printf("[catalog] cache set failed for %s: %v", key, err)
	}
}

// invalidateProducts drops all cached product reads after a mutation.
func (s *Service) invalidateProducts(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "product*"); err != nil {
		log.Printf("[catalog] cache invalidation failed: %v", err)
	}
}

// orderClause maps the public sort key to an ORDER BY clause. Unknown
// keys fall back to newest first.
func orderClause(sort string) string {
	switch sort {
	case "price":
		return "price ASC"
	case "-price":
		return "price DESC"
	case "name":
		return "name ASC"
	case "-name":
		return "name DESC"
	case "createdAt":
		return "created_at ASC"
	case "rating":
		return "rating ASC"
	case "-rating":
		return "rating DESC"
	default:
		return "created_at DESC"
	}
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a URL slug from a name.
func slugify(name string) string {
	slug := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}

// toProductResponse converts a Product entity to a ProductResponse.
func toProductResponse(p *Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Slug:           p.Slug,
		Description:    p.Description,
		Price:          p.Price,
		CompareAtPrice: p.CompareAtPrice,
		Category: CategoryRef{
			ID:   p.CategoryID,
			Name: p.Category.Name,
			Slug: p.Category.Slug,
		},
		Images:     p.Images,
		Stock:      p.Stock,
		Tags:       p.Tags,
		Featured:   p.Featured,
		Rating:     p.Rating,
		NumReviews: p.NumReviews,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// toCategoryResponse converts a Category entity to a CategoryResponse.
func toCategoryResponse(c *Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Image:       c.Image,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
