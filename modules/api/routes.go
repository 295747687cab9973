package api

import (
	"github.com/gofiber/fiber/v2"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	m.app.Get("/health", m.healthHandler)

	api := m.app.Group("/api")

	authRequired := AuthRequired(m.auth)
	adminRequired := AdminRequired()

	// Auth endpoints
	authGroup := api.Group("/auth")
	authGroup.Post("/register", m.register)
	authGroup.Post("/login", m.login)
	authGroup.Post("/refresh", m.refresh)
	authGroup.Get("/me", authRequired, m.me)

	// Product endpoints; mutations are admin only
	products := api.Group("/products")
	products.Get("/", m.listProducts)
	products.Get("/:id", m.getProduct)
	products.Post("/", authRequired, adminRequired, m.createProduct)
	products.Put("/:id", authRequired, adminRequired, m.updateProduct)
	products.Delete("/:id", authRequired, adminRequired, m.deleteProduct)

	// Category endpoints; mutations are admin only
	categories := api.Group("/categories")
	categories.Get("/", m.listCategories)
	categories.Get("/:id", m.getCategory)
	categories.Post("/", authRequired, adminRequired, m.createCategory)
	categories.Put("/:id", authRequired, adminRequired, m.updateCategory)
	categories.Delete("/:id", authRequired, adminRequired, m.deleteCategory)

	// Cart endpoints, all scoped to the authenticated user
	cartGroup := api.Group("/cart", authRequired)
	cartGroup.Get("/", m.getCart)
	cartGroup.Post("/", m.addToCart)
	cartGroup.Put("/:itemId", m.updateCartItem)
	cartGroup.Delete("/:itemId", m.removeCartItem)
	cartGroup.Delete("/", m.clearCart)

	// Order endpoints. The admin listing is registered before :id so the
	// literal segment wins.
	orders := api.Group("/orders", authRequired)
	orders.Post("/", m.placeOrder)
	orders.Get("/", m.myOrders)
	orders.Get("/admin/all", adminRequired, m.allOrders)
	orders.Get("/:id", m.getOrder)
	orders.Put("/:id/status", adminRequired, m.updateOrderStatus)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module": "api",
			"port":   m.config.Port,
		},
	})
}
