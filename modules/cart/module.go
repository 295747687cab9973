package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jngonzales/E-Commerce/modules/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// CartModule provides cart services backed by GORM + SQLite. It depends
// on the catalog module for product lookups and stock checks.
type CartModule struct {
	db      *gorm.DB
	service *CartService
	catalog catalog.CatalogPort
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*CartModule)(nil)
var _ mono.ServiceProviderModule = (*CartModule)(nil)
var _ mono.DependentModule = (*CartModule)(nil)
var _ mono.HealthCheckableModule = (*CartModule)(nil)

// NewModule creates a new CartModule.
func NewModule(dbPath string) *CartModule {
	return &CartModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *CartModule) Name() string {
	return "cart"
}

// Dependencies returns the list of module dependencies.
func (m *CartModule) Dependencies() []string {
	return []string{"catalog"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *CartModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "catalog" {
		m.catalog = catalog.NewCatalogAdapter(container)
	}
}

// Start initializes the cart module.
func (m *CartModule) Start(_ context.Context) error {
	if m.catalog == nil {
		return fmt.Errorf("catalog dependency not set")
	}

	db, err := gorm.Open(sqlite.Open(m.dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	m.db = db

	repo := NewRepository(db)
	if err := repo.Migrate(); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	m.service = NewCartService(repo, m.catalog)

	log.Printf("[cart] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *CartModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[cart] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *CartModule) Health(ctx context.Context) mono.HealthStatus {
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
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *CartModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "get", json.Unmarshal, json.Marshal, m.handleGetCart,
	); err != nil {
		return fmt.Errorf("failed to register get service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "add-item", json.Unmarshal, json.Marshal, m.handleAddItem,
	); err != nil {
		return fmt.Errorf("failed to register add-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-item", json.Unmarshal, json.Marshal, m.handleUpdateItem,
	); err != nil {
		return fmt.Errorf("failed to register update-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "remove-item", json.Unmarshal, json.Marshal, m.handleRemoveItem,
	); err != nil {
		return fmt.Errorf("failed to register remove-item service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "clear", json.Unmarshal, json.Marshal, m.handleClearCart,
	); err != nil {
		return fmt.Errorf("failed to register clear service: %w", err)
	}

	log.Printf("[cart] Registered services: get, add-item, update-item, remove-item, clear")
	return nil
}

func (m *CartModule) handleGetCart(ctx context.Context, req GetCartRequest, _ *mono.Msg) (CartResponse, error) {
	return m.service.GetCart(ctx, req.UserID)
}

func (m *CartModule) handleAddItem(ctx context.Context, req AddItemRequest, _ *mono.Msg) (CartResponse, error) {
	return m.service.AddItem(ctx, req.UserID, req.ProductID, req.Quantity)
}

func (m *CartModule) handleUpdateItem(ctx context.Context, req UpdateItemRequest, _ *mono.Msg) (CartResponse, error) {
	return m.service.UpdateItem(ctx, req.UserID, req.ItemID, req.Quantity)
}

func (m *CartModule) handleRemoveItem(ctx context.Context, req RemoveItemRequest, _ *mono.Msg) (CartResponse, error) {
	return m.service.RemoveItem(ctx, req.UserID, req.ItemID)
}

func (m *CartModule) handleClearCart(ctx context.Context, req ClearCartRequest, _ *mono.Msg) (ClearCartResponse, error) {
	if err := m.service.Clear(ctx, req.UserID); err != nil {
		return ClearCartResponse{Cleared: false}, err
	}
	return ClearCartResponse{Cleared: true}, nil
}
