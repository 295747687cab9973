package order

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/jngonzales/E-Commerce/modules/auth"
	"github.com/jngonzales/E-Commerce/modules/cart"
	"github.com/jngonzales/E-Commerce/modules/catalog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OrderModule provides order placement and order query services. It
// depends on catalog (stock), cart (clearing after placement) and auth
// (owner expansion on admin reads).
type OrderModule struct {
	db      *gorm.DB
	service *OrderService
	catalog catalog.CatalogPort
	cart    cart.CartPort
	auth    auth.AuthPort
	dbPath  string
}

// Compile-time interface checks.
var _ mono.Module = (*OrderModule)(nil)
var _ mono.ServiceProviderModule = (*OrderModule)(nil)
var _ mono.DependentModule = (*OrderModule)(nil)
var _ mono.HealthCheckableModule = (*OrderModule)(nil)

// NewModule creates a new OrderModule.
func NewModule(dbPath string) *OrderModule {
	return &OrderModule{
		dbPath: dbPath,
	}
}

// Name returns the module name.
func (m *OrderModule) Name() string {
	return "order"
}

// Dependencies returns the list of module dependencies.
func (m *OrderModule) Dependencies() []string {
	return []string{"catalog", "cart", "auth"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *OrderModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "catalog":
		m.catalog = catalog.NewCatalogAdapter(container)
	case "cart":
		m.cart = cart.NewCartAdapter(container)
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	}
}

// Start initializes the order module.
func (m *OrderModule) Start(_ context.Context) error {
	if m.catalog == nil || m.cart == nil || m.auth == nil {
		return fmt.Errorf("order module dependencies not set")
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

	m.service = NewOrderService(repo, m.catalog, m.cart, m.auth)

	log.Printf("[order] Module started (database: %s)", m.dbPath)
	return nil
}

// Stop shuts down the module.
func (m *OrderModule) Stop(_ context.Context) error {
	if m.db != nil {
		sqlDB, err := m.db.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
	log.Println("[order] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *OrderModule) Health(ctx context.Context) mono.HealthStatus {
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
func (m *OrderModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "place-order", json.Unmarshal, json.Marshal, m.handlePlaceOrder,
	); err != nil {
		return fmt.Errorf("failed to register place-order service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "my-orders", json.Unmarshal, json.Marshal, m.handleMyOrders,
	); err != nil {
		return fmt.Errorf("failed to register my-orders service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-order", json.Unmarshal, json.Marshal, m.handleGetOrder,
	); err != nil {
		return fmt.Errorf("failed to register get-order service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "all-orders", json.Unmarshal, json.Marshal, m.handleAllOrders,
	); err != nil {
		return fmt.Errorf("failed to register all-orders service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "update-status", json.Unmarshal, json.Marshal, m.handleUpdateStatus,
	); err != nil {
		return fmt.Errorf("failed to register update-status service: %w", err)
	}

	log.Printf("[order] Registered services: place-order, my-orders, get-order, all-orders, update-status")
	return nil
}

func (m *OrderModule) handlePlaceOrder(ctx context.Context, req PlaceOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	return m.service.PlaceOrder(ctx, req)
}

func (m *OrderModule) handleMyOrders(ctx context.Context, req MyOrdersRequest, _ *mono.Msg) (OrderListResponse, error) {
	return m.service.MyOrders(ctx, req.UserID)
}

func (m *OrderModule) handleGetOrder(ctx context.Context, req GetOrderRequest, _ *mono.Msg) (OrderResponse, error) {
	return m.service.GetOrder(ctx, req)
}

func (m *OrderModule) handleAllOrders(ctx context.Context, _ AllOrdersRequest, _ *mono.Msg) (OrderListResponse, error) {
	return m.service.AllOrders(ctx)
}

func (m *OrderModule) handleUpdateStatus(ctx context.Context, req UpdateStatusRequest, _ *mono.Msg) (OrderResponse, error) {
	return m.service.UpdateStatus(ctx, req)
}
