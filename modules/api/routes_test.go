package api

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	domain "github.com/jngonzales/E-Commerce/domain/user"
	"github.com/jngonzales/E-Commerce/modules/cart"
	"github.com/jngonzales/E-Commerce/modules/catalog"
	"github.com/jngonzales/E-Commerce/modules/order"
)

// mockOrderPort implements order.OrderPort for testing.
type mockOrderPort struct {
	myOrdersFunc  func(ctx context.Context, userID string) (*order.OrderListResponse, error)
	getOrderFunc  func(ctx context.Context, req order.GetOrderRequest) (*order.OrderResponse, error)
	allOrdersFunc func(ctx context.Context) (*order.OrderListResponse, error)
}

func (m *mockOrderPort) PlaceOrder(context.Context, order.PlaceOrderRequest) (*order.OrderResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockOrderPort) MyOrders(ctx context.Context, userID string) (*order.OrderListResponse, error) {
	if m.myOrdersFunc != nil {
		return m.myOrdersFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOrderPort) GetOrder(ctx context.Context, req order.GetOrderRequest) (*order.OrderResponse, error) {
	if m.getOrderFunc != nil {
		return m.getOrderFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOrderPort) AllOrders(ctx context.Context) (*order.OrderListResponse, error) {
	if m.allOrdersFunc != nil {
		return m.allOrdersFunc(ctx)
	}
	return nil, errors.New("not implemented")
}

func (m *mockOrderPort) UpdateStatus(context.Context, order.UpdateStatusRequest) (*order.OrderResponse, error) {
	return nil, errors.New("not implemented")
}

// mockCartPort implements cart.CartPort for testing.
type mockCartPort struct {
	clearFunc func(ctx context.Context, userID string) error
}

func (m *mockCartPort) GetCart(context.Context, string) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCartPort) AddItem(context.Context, cart.AddItemRequest) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCartPort) UpdateItem(context.Context, cart.UpdateItemRequest) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCartPort) RemoveItem(context.Context, string, string) (*cart.CartResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCartPort) Clear(ctx context.Context, userID string) error {
	if m.clearFunc != nil {
		return m.clearFunc(ctx, userID)
	}
	return errors.New("not implemented")
}

// mockCatalogPort implements catalog.CatalogPort for testing.
type mockCatalogPort struct {
	deleteProductFunc  func(ctx context.Context, id string) error
	deleteCategoryFunc func(ctx context.Context, id string) error
}

func (m *mockCatalogPort) ListProducts(context.Context, catalog.ListProductsRequest) (*catalog.ListProductsResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) GetProduct(context.Context, string) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) CreateProduct(context.Context, catalog.CreateProductRequest) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) UpdateProduct(context.Context, catalog.UpdateProductRequest) (*catalog.ProductResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) DeleteProduct(ctx context.Context, id string) error {
	if m.deleteProductFunc != nil {
		return m.deleteProductFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func (m *mockCatalogPort) DecrementStock(context.Context, string, int) (*catalog.DecrementStockResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) RestoreStock(context.Context, string, int) error {
	return errors.New("not implemented")
}

func (m *mockCatalogPort) ListCategories(context.Context) (*catalog.ListCategoriesResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) GetCategory(context.Context, string) (*catalog.CategoryResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) CreateCategory(context.Context, catalog.CreateCategoryRequest) (*catalog.CategoryResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) UpdateCategory(context.Context, catalog.UpdateCategoryRequest) (*catalog.CategoryResponse, error) {
	return nil, errors.New("not implemented")
}

func (m *mockCatalogPort) DeleteCategory(ctx context.Context, id string) error {
	if m.deleteCategoryFunc != nil {
		return m.deleteCategoryFunc(ctx, id)
	}
	return errors.New("not implemented")
}

func setupOrderRoutes(t *testing.T, authPort *mockAuthPort, orderPort *mockOrderPort) *fiber.App {
	t.Helper()

	m := &APIModule{
		app:   fiber.New(fiber.Config{DisableStartupMessage: true}),
		auth:  authPort,
		order: orderPort,
	}
	m.setupRoutes()
	return m.app
}

func authedGet(t *testing.T, app *fiber.App, path string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer some-token")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestOrderRoutes_ListOwnOrders(t *testing.T) {
	var gotUserID string
	orderPort := &mockOrderPort{
		myOrdersFunc: func(_ context.Context, userID string) (*order.OrderListResponse, error) {
			gotUserID = userID
			return &order.OrderListResponse{
				Orders: []order.OrderResponse{{ID: "order-1", UserID: userID}},
				Total:  1,
			}, nil
		},
	}
	app := setupOrderRoutes(t, validClaims(domain.RoleUser), orderPort)

	resp := authedGet(t, app, "/api/orders")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if gotUserID != "user-123" {
		t.Errorf("expected listing for user %q, got %q", "user-123", gotUserID)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("io.ReadAll() error = %v", err)
	}
	if !strings.Contains(string(body), "order-1") {
		t.Errorf("expected body to contain the order, got %s", body)
	}
}

func TestOrderRoutes_GetByIDStaysSeparate(t *testing.T) {
	var gotOrderID string
	orderPort := &mockOrderPort{
		getOrderFunc: func(_ context.Context, req order.GetOrderRequest) (*order.OrderResponse, error) {
			gotOrderID = req.OrderID
			return &order.OrderResponse{ID: req.OrderID, UserID: req.UserID}, nil
		},
	}
	app := setupOrderRoutes(t, validClaims(domain.RoleUser), orderPort)

	resp := authedGet(t, app, "/api/orders/order-42")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if gotOrderID != "order-42" {
		t.Errorf("expected order id %q, got %q", "order-42", gotOrderID)
	}
}

func TestOrderRoutes_AdminListingWinsOverParam(t *testing.T) {
	called := false
	orderPort := &mockOrderPort{
		allOrdersFunc: func(_ context.Context) (*order.OrderListResponse, error) {
			called = true
			return &order.OrderListResponse{}, nil
		},
	}
	app := setupOrderRoutes(t, validClaims(domain.RoleAdmin), orderPort)

	resp := authedGet(t, app, "/api/orders/admin/all")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if !called {
		t.Error("expected the admin listing handler to be called")
	}
}

// Deletes and the cart clear reply with a JSON confirmation body, never
// an empty 204.
func TestDeleteConfirmationBodies(t *testing.T) {
	noErr := func(context.Context, string) error { return nil }
	m := &APIModule{
		app:  fiber.New(fiber.Config{DisableStartupMessage: true}),
		auth: validClaims(domain.RoleAdmin),
		catalog: &mockCatalogPort{
			deleteProductFunc:  noErr,
			deleteCategoryFunc: noErr,
		},
		cart: &mockCartPort{clearFunc: noErr},
	}
	m.setupRoutes()

	tests := []struct {
		name    string
		path    string
		message string
	}{
		{"clear cart", "/api/cart", "Cart cleared"},
		{"delete product", "/api/products/prod-1", "Product removed"},
		{"delete category", "/api/categories/cat-1", "Category removed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, tt.path, nil)
			req.Header.Set("Authorization", "Bearer some-token")
			resp, err := m.app.Test(req, -1)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
			}
			body, err := io.ReadAll(resp.Body)
			if err != nil {
				t.Fatalf("io.ReadAll() error = %v", err)
			}
			if !strings.Contains(string(body), tt.message) {
				t.Errorf("expected body to contain %q, got %s", tt.message, body)
			}
		})
	}
}
