package api

import (
	"context"
	"fmt"
	"log"

	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jngonzales/E-Commerce/modules/auth"
	"github.com/jngonzales/E-Commerce/modules/cart"
	"github.com/jngonzales/E-Commerce/modules/catalog"
	"github.com/jngonzales/E-Commerce/modules/order"
)

// Config holds the API module configuration.
type Config struct {
	Port string
}

// APIModule is the driving adapter that exposes the storefront REST
// endpoints. It reaches the other modules only through their ports.
type APIModule struct {
	config  Config
	app     *fiber.App
	auth    auth.AuthPort
	catalog catalog.CatalogPort
	cart    cart.CartPort
	order   order.OrderPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule(config Config) *APIModule {
	return &APIModule{config: config}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the modules this one calls into.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "catalog", "cart", "order"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.auth = auth.NewAuthAdapter(container)
	case "catalog":
		m.catalog = catalog.NewCatalogAdapter(container)
	case "cart":
		m.cart = cart.NewCartAdapter(container)
	case "order":
		m.order = order.NewOrderAdapter(container)
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	if m.auth == nil || m.catalog == nil || m.cart == nil || m.order == nil {
		return fmt.Errorf("api module dependencies not set")
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.setupRoutes()

	// Server availability is verified via Health().
	go func() {
		if err := m.app.Listen(":" + m.config.Port); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on :%s", m.config.Port)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(ctx context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.ShutdownWithContext(ctx)
}

// Health returns the health status of the module.
func (m *APIModule) Health(ctx context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"port": m.config.Port,
		},
	}
}

// customErrorHandler handles errors Fiber raises itself (unknown routes,
// body limits). Handler errors never reach it; handlers reply directly.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{Message: message})
}
