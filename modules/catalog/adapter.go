package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CatalogPort is the interface other modules use to access the catalog.
type CatalogPort interface {
	ListProducts(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error)
	GetProduct(ctx context.Context, id string) (*ProductResponse, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*ProductResponse, error)
	DeleteProduct(ctx context.Context, id string) error
	DecrementStock(ctx context.Context, productID string, quantity int) (*DecrementStockResponse, error)
	RestoreStock(ctx context.Context, productID string, quantity int) error
	ListCategories(ctx context.Context) (*ListCategoriesResponse, error)
	GetCategory(ctx context.Context, id string) (*CategoryResponse, error)
	CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error)
	UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error)
	DeleteCategory(ctx context.Context, id string) error
}

// catalogAdapter implements CatalogPort using the service container.
type catalogAdapter struct {
	container mono.ServiceContainer
}

// NewCatalogAdapter creates a new adapter for catalog services.
func NewCatalogAdapter(container mono.ServiceContainer) CatalogPort {
	if container == nil {
		panic("catalog adapter requires non-nil ServiceContainer")
	}
	return &catalogAdapter{container: container}
}

func (a *catalogAdapter) ListProducts(ctx context.Context, req ListProductsRequest) (*ListProductsResponse, error) {
	var resp ListProductsResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-products",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-products service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) GetProduct(ctx context.Context, id string) (*ProductResponse, error) {
	req := GetProductRequest{ID: id}
	var resp ProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-product",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	var resp ProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-product",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*ProductResponse, error) {
	var resp ProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-product",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) DeleteProduct(ctx context.Context, id string) error {
	req := DeleteProductRequest{ID: id}
	var resp DeleteProductResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-product",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return restoreSentinel(err)
	}
	return nil
}

func (a *catalogAdapter) DecrementStock(ctx context.Context, productID string, quantity int) (*DecrementStockResponse, error) {
	req := DecrementStockRequest{ProductID: productID, Quantity: quantity}
	var resp DecrementStockResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "decrement-stock",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("decrement-stock service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) RestoreStock(ctx context.Context, productID string, quantity int) error {
	req := RestoreStockRequest{ProductID: productID, Quantity: quantity}
	var resp RestoreStockResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "restore-stock",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return fmt.Errorf("restore-stock service call failed: %w", err)
	}
	return nil
}

func (a *catalogAdapter) ListCategories(ctx context.Context) (*ListCategoriesResponse, error) {
	req := ListCategoriesRequest{}
	var resp ListCategoriesResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "list-categories",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("list-categories service call failed: %w", err)
	}
	return &resp, nil
}

func (a *catalogAdapter) GetCategory(ctx context.Context, id string) (*CategoryResponse, error) {
	req := GetCategoryRequest{ID: id}
	var resp CategoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-category",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "create-category",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-category",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *catalogAdapter) DeleteCategory(ctx context.Context, id string) error {
	req := DeleteCategoryRequest{ID: id}
	var resp DeleteCategoryResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "delete-category",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return restoreSentinel(err)
	}
	return nil
}

// restoreSentinel maps errors coming back over the service container to
// the package sentinels. Errors are flattened to their message in transit,
// so the mapping has to match on text.
func restoreSentinel(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrProductNotFound,
		ErrCategoryNotFound,
		ErrCategoryInUse,
		ErrCategoryExists,
		ErrProductSlugExists,
		ErrNameRequired,
		ErrDescriptionRequired,
		ErrCategoryRequired,
		ErrNegativePrice,
		ErrNegativeStock,
	} {
		if strings.Contains(msg, sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
