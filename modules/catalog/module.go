package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jngonzales/E-Commerce/modules/cache"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CatalogModule provides product and category services via GORM + SQLite.
type CatalogModule struct {
	db      *gorm.DB
	repo    *Repository
	service *Service
	cache   *cache.Cache
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*CatalogModule)(nil)
var _ mono.ServiceProviderModule = (*CatalogModule)(nil)
var _ mono.HealthCheckableModule = (*CatalogModule)(nil)

// NewModule creates a new CatalogModule.
func NewModule(dbPath string) *CatalogModule {
	return &CatalogModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *CatalogModule) Name() string {
	return "catalog"
}

// SetCache wires the Redis cache into the catalog read path. Called from
// main after the cache module has started; reads work uncached until then.
func (m *CatalogModule) SetCache(c *cache.Cache) {
	m.cache = c
	if m.repo != nil {
		m.service = NewService(m.repo, c)
	}
}

// Start initializes the database connection and runs migrations.
func (m *CatalogModule) Start(_ context.Context) error {
	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db
	m.repo = NewRepository(db)

	if err := m.repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewService(m.repo, m.cache)

	log.Printf("[catalog] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *CatalogModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[catalog] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CatalogModule) Health(ctx context.Context) mono.HealthStatus {
	if m.db == nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "database not initialized",
		}
	}

	sqlDB, err := m.db.DB()
	if err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("failed to get database connection: %v", err),
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: fmt.Sprintf("database ping failed: %v", err),
		}
	}

	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"database": m.dbPath,
			"caching":  m.cache != nil,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CatalogModule) RegisterServices(container mono.ServiceContainer) error {
	register := func(name string, err error) error {
		if err != nil {
			return fmt.Errorf("failed to register %s service: %w", name, err)
		}
		return nil
	}

	if err := register("list-products", helper.RegisterTypedRequestReplyService(
		container, "list-products", json.Unmarshal, json.Marshal, m.handleListProducts)); err != nil {
		return err
	}
	if err := register("get-product", helper.RegisterTypedRequestReplyService(
		container, "get-product", json.Unmarshal, json.Marshal, m.handleGetProduct)); err != nil {
		return err
	}
	if err := register("create-product", helper.RegisterTypedRequestReplyService(
		container, "create-product", json.Unmarshal, json.Marshal, m.handleCreateProduct)); err != nil {
		return err
	}
	if err := register("update-product", helper.RegisterTypedRequestReplyService(
		container, "update-product", json.Unmarshal, json.Marshal, m.handleUpdateProduct)); err != nil {
		return err
	}
	if err := register("delete-product", helper.RegisterTypedRequestReplyService(
		container, "delete-product", json.Unmarshal, json.Marshal, m.handleDeleteProduct)); err != nil {
		return err
	}
	if err := register("decrement-stock", helper.RegisterTypedRequestReplyService(
		container, "decrement-stock", json.Unmarshal, json.Marshal, m.handleDecrementStock)); err != nil {
		return err
	}
	if err := register("restore-stock", helper.RegisterTypedRequestReplyService(
		container, "restore-stock", json.Unmarshal, json.Marshal, m.handleRestoreStock)); err != nil {
		return err
	}
	if err := register("list-categories", helper.RegisterTypedRequestReplyService(
		container, "list-categories", json.Unmarshal, json.Marshal, m.handleListCategories)); err != nil {
		return err
	}
	if err := register("get-category", helper.RegisterTypedRequestReplyService(
		container, "get-category", json.Unmarshal, json.Marshal, m.handleGetCategory)); err != nil {
		return err
	}
	if err := register("create-category", helper.RegisterTypedRequestReplyService(
		container, "create-category", json.Unmarshal, json.Marshal, m.handleCreateCategory)); err != nil {
		return err
	}
	if err := register("update-category", helper.RegisterTypedRequestReplyService(
		container, "update-category", json.Unmarshal, json.Marshal, m.handleUpdateCategory)); err != nil {
		return err
	}
	if err := register("delete-category", helper.RegisterTypedRequestReplyService(
		container, "delete-category", json.Unmarshal, json.Marshal, m.handleDeleteCategory)); err != nil {
		return err
	}

	log.Printf("[catalog] Registered product, category and stock services")
	return nil
}

func (m *CatalogModule) handleListProducts(ctx context.Context, req ListProductsRequest, _ *mono.Msg) (ListProductsResponse, error) {
	return m.service.ListProducts(ctx, req)
}

func (m *CatalogModule) handleGetProduct(ctx context.Context, req GetProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == "" {
		return ProductResponse{}, ErrProductNotFound
	}
	return m.service.GetProduct(ctx, req.ID)
}

func (m *CatalogModule) handleCreateProduct(ctx context.Context, req CreateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	return m.service.CreateProduct(ctx, req)
}

func (m *CatalogModule) handleUpdateProduct(ctx context.Context, req UpdateProductRequest, _ *mono.Msg) (ProductResponse, error) {
	if req.ID == "" {
		return ProductResponse{}, ErrProductNotFound
	}
	return m.service.UpdateProduct(ctx, req)
}

func (m *CatalogModule) handleDeleteProduct(ctx context.Context, req DeleteProductRequest, _ *mono.Msg) (DeleteProductResponse, error) {
	if err := m.service.DeleteProduct(ctx, req.ID); err != nil {
		return DeleteProductResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteProductResponse{Deleted: true, ID: req.ID}, nil
}

// handleDecrementStock reports domain outcomes in the reply so the order
// module can branch on them across the service container.
func (m *CatalogModule) handleDecrementStock(ctx context.Context, req DecrementStockRequest, _ *mono.Msg) (DecrementStockResponse, error) {
	if req.Quantity < 1 {
		return DecrementStockResponse{}, fmt.Errorf("quantity must be positive")
	}
	if err := m.service.DecrementStock(ctx, req.ProductID, req.Quantity); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return DecrementStockResponse{Decremented: false, Reason: StockReasonNotFound}, nil
		case errors.Is(err, ErrInsufficientStock):
			return DecrementStockResponse{Decremented: false, Reason: StockReasonInsufficient}, nil
		default:
			return DecrementStockResponse{}, err
		}
	}
	return DecrementStockResponse{Decremented: true}, nil
}

func (m *CatalogModule) handleRestoreStock(ctx context.Context, req RestoreStockRequest, _ *mono.Msg) (RestoreStockResponse, error) {
	if err := m.service.RestoreStock(ctx, req.ProductID, req.Quantity); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return RestoreStockResponse{Restored: false}, nil
		}
		return RestoreStockResponse{}, err
	}
	return RestoreStockResponse{Restored: true}, nil
}

func (m *CatalogModule) handleListCategories(ctx context.Context, _ ListCategoriesRequest, _ *mono.Msg) (ListCategoriesResponse, error) {
	return m.service.ListCategories(ctx)
}

func (m *CatalogModule) handleGetCategory(ctx context.Context, req GetCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	if req.ID == "" {
		return CategoryResponse{}, ErrCategoryNotFound
	}
	return m.service.GetCategory(ctx, req.ID)
}

func (m *CatalogModule) handleCreateCategory(ctx context.Context, req CreateCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	return m.service.CreateCategory(ctx, req)
}

func (m *CatalogModule) handleUpdateCategory(ctx context.Context, req UpdateCategoryRequest, _ *mono.Msg) (CategoryResponse, error) {
	if req.ID == "" {
		return CategoryResponse{}, ErrCategoryNotFound
	}
	return m.service.UpdateCategory(ctx, req)
}

func (m *CatalogModule) handleDeleteCategory(ctx context.Context, req DeleteCategoryRequest, _ *mono.Msg) (DeleteCategoryResponse, error) {
	if err := m.service.DeleteCategory(ctx, req.ID); err != nil {
		return DeleteCategoryResponse{Deleted: false, ID: req.ID}, err
	}
	return DeleteCategoryResponse{Deleted: true, ID: req.ID}, nil
}
