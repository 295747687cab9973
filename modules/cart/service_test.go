package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/jngonzales/E-Commerce/modules/catalog"
)

// mockCatalog is a CatalogPort test double. Only the methods a test sets
// are callable; the rest fail loudly.
type mockCatalog struct {
	getProduct func(ctx context.Context, id string) (*catalog.ProductResponse, error)
}

func (m *mockCatalog) GetProduct(ctx context.Context, id string) (*catalog.ProductResponse, error) {
	if m.getProduct == nil {
		panic("unexpected GetProduct call")
	}
	return m.getProduct(ctx, id)
}

func (m *mockCatalog) ListProducts(context.Context, catalog.ListProductsRequest) (*catalog.ListProductsResponse, error) {
	panic("unexpected ListProducts call")
}

func (m *mockCatalog) CreateProduct(context.Context, catalog.CreateProductRequest) (*catalog.ProductResponse, error) {
	panic("unexpected CreateProduct call")
}

func (m *mockCatalog) UpdateProduct(context.Context, catalog.UpdateProductRequest) (*catalog.ProductResponse, error) {
	panic("unexpected UpdateProduct call")
}

func (m *mockCatalog) DeleteProduct(context.Context, string) error {
	panic("unexpected DeleteProduct call")
}

func (m *mockCatalog) DecrementStock(context.Context, string, int) (*catalog.DecrementStockResponse, error) {
	panic("unexpected DecrementStock call")
}

func (m *mockCatalog) RestoreStock(context.Context, string, int) error {
	panic("unexpected RestoreStock call")
}

func (m *mockCatalog) ListCategories(context.Context) (*catalog.ListCategoriesResponse, error) {
	panic("unexpected ListCategories call")
}

func (m *mockCatalog) GetCategory(context.Context, string) (*catalog.CategoryResponse, error) {
	panic("unexpected GetCategory call")
}

func (m *mockCatalog) CreateCategory(context.Context, catalog.CreateCategoryRequest) (*catalog.CategoryResponse, error) {
	panic("unexpected CreateCategory call")
}

func (m *mockCatalog) UpdateCategory(context.Context, catalog.UpdateCategoryRequest) (*catalog.CategoryResponse, error) {
	panic("unexpected UpdateCategory call")
}

func (m *mockCatalog) DeleteCategory(context.Context, string) error {
	panic("unexpected DeleteCategory call")
}

// staticCatalog returns a mock that serves the given products by ID and
// reports everything else as not found.
func staticCatalog(products map[string]catalog.ProductResponse) *mockCatalog {
	return &mockCatalog{
		getProduct: func(_ context.Context, id string) (*catalog.ProductResponse, error) {
			p, ok := products[id]
			if !ok {
				return nil, catalog.ErrProductNotFound
			}
			return &p, nil
		},
	}
}

func setupTestService(t *testing.T, products map[string]catalog.ProductResponse) *CartService {
	t.Helper()
	db := setupTestDB(t)
	return NewCartService(NewRepository(db), staticCatalog(products))
}

func TestCartService_GetCart(t *testing.T) {
	svc := setupTestService(t, nil)
	ctx := context.Background()

	cart, err := svc.GetCart(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if cart.UserID != "user-1" || len(cart.Items) != 0 {
		t.Errorf("unexpected cart: %+v", cart)
	}

	again, err := svc.GetCart(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCart() second call error = %v", err)
	}
	if again.ID != cart.ID {
		t.Errorf("expected stable cart ID, got %q then %q", cart.ID, again.ID)
	}
}

func TestCartService_AddItem(t *testing.T) {
	products := map[string]catalog.ProductResponse{
		"prod-1": {ID: "prod-1", Name: "Headphones", Slug: "headphones", Price: 49.99, Stock: 5},
	}
	svc := setupTestService(t, products)
	ctx := context.Background()

	t.Run("adds with price snapshot", func(t *testing.T) {
		cart, err := svc.AddItem(ctx, "user-1", "prod-1", 2)
		if err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if len(cart.Items) != 1 {
			t.Fatalf("expected 1 item, got %d", len(cart.Items))
		}
		if cart.Items[0].Price != 49.99 || cart.Items[0].Quantity != 2 {
			t.Errorf("unexpected item: %+v", cart.Items[0])
		}
		if cart.Items[0].Product == nil || cart.Items[0].Product.Name != "Headphones" {
			t.Errorf("expected expanded product, got %+v", cart.Items[0].Product)
		}
	})

	t.Run("same product merges into one line", func(t *testing.T) {
		cart, err := svc.AddItem(ctx, "user-1", "prod-1", 1)
		if err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if len(cart.Items) != 1 {
			t.Fatalf("expected merged line item, got %d items", len(cart.Items))
		}
		if cart.Items[0].Quantity != 3 {
			t.Errorf("expected quantity 3, got %d", cart.Items[0].Quantity)
		}
	})

	t.Run("quantity below one rejected", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", "prod-1", 0)
		if !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("expected ErrInvalidQuantity, got %v", err)
		}
	})

	t.Run("insufficient stock names the product", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", "prod-1", 10)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Fatalf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("unknown product rejected", func(t *testing.T) {
		_, err := svc.AddItem(ctx, "user-1", "missing", 1)
		if !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestCartService_UpdateItem(t *testing.T) {
	products := map[string]catalog.ProductResponse{
		"prod-1": {ID: "prod-1", Name: "Headphones", Price: 49.99, Stock: 5},
	}
	svc := setupTestService(t, products)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "user-1", "prod-1", 1)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	itemID := cart.Items[0].ID

	t.Run("quantity overwritten, snapshot kept", func(t *testing.T) {
		updated, err := svc.UpdateItem(ctx, "user-1", itemID, 4)
		if err != nil {
			t.Fatalf("UpdateItem() error = %v", err)
		}
		if updated.Items[0].Quantity != 4 {
			t.Errorf("expected quantity 4, got %d", updated.Items[0].Quantity)
		}
		if updated.Items[0].Price != 49.99 {
			t.Errorf("price snapshot changed: %v", updated.Items[0].Price)
		}
	})

	t.Run("revalidates against current stock", func(t *testing.T) {
		_, err := svc.UpdateItem(ctx, "user-1", itemID, 99)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}
	})

	t.Run("missing item", func(t *testing.T) {
		_, err := svc.UpdateItem(ctx, "user-1", "missing", 1)
		if !errors.Is(err, ErrItemNotFound) {
			t.Errorf("expected ErrItemNotFound, got %v", err)
		}
	})
}

func TestCartService_RemoveAndClear(t *testing.T) {
	products := map[string]catalog.ProductResponse{
		"prod-1": {ID: "prod-1", Name: "Headphones", Price: 49.99, Stock: 5},
		"prod-2": {ID: "prod-2", Name: "Speakers", Price: 89.99, Stock: 5},
	}
	svc := setupTestService(t, products)
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "user-1", "prod-1", 1)
	if err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}
	if _, err := svc.AddItem(ctx, "user-1", "prod-2", 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	t.Run("remove is idempotent", func(t *testing.T) {
		itemID := cart.Items[0].ID
		after, err := svc.RemoveItem(ctx, "user-1", itemID)
		if err != nil {
			t.Fatalf("RemoveItem() error = %v", err)
		}
		if len(after.Items) != 1 {
			t.Errorf("expected 1 item left, got %d", len(after.Items))
		}

		if _, err := svc.RemoveItem(ctx, "user-1", itemID); err != nil {
			t.Errorf("second RemoveItem() should succeed, got %v", err)
		}
	})

	t.Run("clear empties items and keeps cart", func(t *testing.T) {
		if err := svc.Clear(ctx, "user-1"); err != nil {
			t.Fatalf("Clear() error = %v", err)
		}
		reloaded, err := svc.GetCart(ctx, "user-1")
		if err != nil {
			t.Fatalf("GetCart() error = %v", err)
		}
		if reloaded.ID != cart.ID {
			t.Errorf("cart row should survive clear")
		}
		if len(reloaded.Items) != 0 {
			t.Errorf("expected empty cart, got %d items", len(reloaded.Items))
		}
	})
}

func TestCartService_VanishedProduct(t *testing.T) {
	products := map[string]catalog.ProductResponse{
		"prod-1": {ID: "prod-1", Name: "Headphones", Price: 49.99, Stock: 5},
	}
	svc := setupTestService(t, products)
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "user-1", "prod-1", 1); err != nil {
		t.Fatalf("AddItem() error = %v", err)
	}

	// The product disappears from the catalog after it was added.
	delete(products, "prod-1")

	cart, err := svc.GetCart(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected the item to survive, got %d items", len(cart.Items))
	}
	if cart.Items[0].Product != nil {
		t.Errorf("expected nil product for vanished catalog entry")
	}
}
