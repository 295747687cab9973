package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.AutoMigrate(&Category{}, &Product{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedCategory inserts a category and returns it.
func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *Category {
	t.Helper()

	category := &Category{
		ID:   uuid.New().String(),
		Name: name,
		Slug: slug,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	return category
}

// seedProduct inserts a product with the given stock and returns it.
func seedProduct(t *testing.T, db *gorm.DB, categoryID, name, slug string, stock int) *Product {
	t.Helper()

	product := &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Slug:        slug,
		Description: "test description",
		Price:       19.99,
		CategoryID:  categoryID,
		Stock:       stock,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func TestRepository_CreateProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Electronics", "electronics")

	product := &Product{
		ID:          uuid.New().String(),
		Name:        "Wireless Mouse",
		Slug:        "wireless-mouse",
		Description: "A wireless mouse",
		Price:       29.99,
		CategoryID:  category.ID,
		Stock:       10,
	}

	if err := repo.CreateProduct(product); err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}

	t.Run("duplicate slug rejected", func(t *testing.T) {
		dup := &Product{
			ID:          uuid.New().String(),
			Name:        "Another Mouse",
			Slug:        "wireless-mouse",
			Description: "duplicate slug",
			Price:       9.99,
			CategoryID:  category.ID,
		}
		err := repo.CreateProduct(dup)
		if !errors.Is(err, ErrSlugExists) {
			t.Errorf("expected ErrSlugExists, got %v", err)
		}
	})
}

func TestRepository_FindProductByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Audio", "audio")
	product := seedProduct(t, db, category.ID, "Headphones", "headphones", 5)

	t.Run("existing product expands category", func(t *testing.T) {
		found, err := repo.FindProductByID(product.ID)
		if err != nil {
			t.Fatalf("FindProductByID() error = %v", err)
		}
		if found.Name != "Headphones" {
			t.Errorf("expected name %q, got %q", "Headphones", found.Name)
		}
		if found.Category.Slug != "audio" {
			t.Errorf("expected category slug %q, got %q", "audio", found.Category.Slug)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		_, err := repo.FindProductByID("missing")
		if !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestRepository_FindProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	audio := seedCategory(t, db, "Audio", "audio")
	video := seedCategory(t, db, "Video", "video")

	seedProduct(t, db, audio.ID, "Headphones", "headphones", 5)
	seedProduct(t, db, audio.ID, "Speakers", "speakers", 3)
	seedProduct(t, db, video.ID, "Webcam", "webcam", 7)

	t.Run("filter by category", func(t *testing.T) {
		products, total, err := repo.FindProducts(ProductQuery{
			CategoryID: audio.ID,
			OrderBy:    "name ASC",
			Limit:      10,
		})
		if err != nil {
			t.Fatalf("FindProducts() error = %v", err)
		}
		if total != 2 {
			t.Errorf("expected total 2, got %d", total)
		}
		if len(products) != 2 || products[0].Name != "Headphones" {
			t.Errorf("unexpected result set: %+v", products)
		}
	})

	t.Run("search is case insensitive", func(t *testing.T) {
		products, total, err := repo.FindProducts(ProductQuery{
			Search:  "WEBCAM",
			OrderBy: "name ASC",
			Limit:   10,
		})
		if err != nil {
			t.Fatalf("FindProducts() error = %v", err)
		}
		if total != 1 || products[0].Slug != "webcam" {
			t.Errorf("expected single webcam match, got total=%d products=%+v", total, products)
		}
	})

	t.Run("paging returns remainder", func(t *testing.T) {
		products, total, err := repo.FindProducts(ProductQuery{
			OrderBy: "name ASC",
			Offset:  2,
			Limit:   2,
		})
		if err != nil {
			t.Fatalf("FindProducts() error = %v", err)
		}
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
		if len(products) != 1 {
			t.Errorf("expected 1 product on last page, got %d", len(products))
		}
	})
}

func TestRepository_DecrementStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Audio", "audio")
	product := seedProduct(t, db, category.ID, "Headphones", "headphones", 5)

	t.Run("decrements when enough stock", func(t *testing.T) {
		if err := repo.DecrementStock(product.ID, 3); err != nil {
			t.Fatalf("DecrementStock() error = %v", err)
		}

		found, err := repo.FindProductByID(product.ID)
		if err != nil {
			t.Fatalf("FindProductByID() error = %v", err)
		}
		if found.Stock != 2 {
			t.Errorf("expected stock 2, got %d", found.Stock)
		}
	})

	t.Run("refuses when stock is short", func(t *testing.T) {
		err := repo.DecrementStock(product.ID, 3)
		if !errors.Is(err, ErrInsufficientStock) {
			t.Errorf("expected ErrInsufficientStock, got %v", err)
		}

		// Stock must be untouched after the refusal.
		found, err := repo.FindProductByID(product.ID)
		if err != nil {
			t.Fatalf("FindProductByID() error = %v", err)
		}
		if found.Stock != 2 {
			t.Errorf("expected stock 2, got %d", found.Stock)
		}
	})

	t.Run("exact remaining stock succeeds", func(t *testing.T) {
		if err := repo.DecrementStock(product.ID, 2); err != nil {
			t.Fatalf("DecrementStock() error = %v", err)
		}

		found, err := repo.FindProductByID(product.ID)
		if err != nil {
			t.Fatalf("FindProductByID() error = %v", err)
		}
		if found.Stock != 0 {
			t.Errorf("expected stock 0, got %d", found.Stock)
		}
	})

	t.Run("missing product", func(t *testing.T) {
		err := repo.DecrementStock("missing", 1)
		if !errors.Is(err, ErrProductNotFound) {
			t.Errorf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestRepository_RestoreStock(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Audio", "audio")
	product := seedProduct(t, db, category.ID, "Headphones", "headphones", 1)

	if err := repo.RestoreStock(product.ID, 4); err != nil {
		t.Fatalf("RestoreStock() error = %v", err)
	}

	found, err := repo.FindProductByID(product.ID)
	if err != nil {
		t.Fatalf("FindProductByID() error = %v", err)
	}
	if found.Stock != 5 {
		t.Errorf("expected stock 5, got %d", found.Stock)
	}

	if err := repo.RestoreStock("missing", 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestRepository_DeleteCategory(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Audio", "audio")
	product := seedProduct(t, db, category.ID, "Headphones", "headphones", 5)

	t.Run("blocked while referenced", func(t *testing.T) {
		err := repo.DeleteCategory(category.ID)
		if !errors.Is(err, ErrCategoryInUse) {
			t.Errorf("expected ErrCategoryInUse, got %v", err)
		}
	})

	t.Run("allowed once empty", func(t *testing.T) {
		if err := repo.DeleteProduct(product.ID); err != nil {
			t.Fatalf("DeleteProduct() error = %v", err)
		}
		if err := repo.DeleteCategory(category.ID); err != nil {
			t.Fatalf("DeleteCategory() error = %v", err)
		}
		if _, err := repo.FindCategoryByID(category.ID); !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("missing category", func(t *testing.T) {
		err := repo.DeleteCategory("missing")
		if !errors.Is(err, ErrCategoryNotFound) {
			t.Errorf("expected ErrCategoryNotFound, got %v", err)
		}
	})
}

func TestRepository_UpdateProduct(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "Audio", "audio")
	product := seedProduct(t, db, category.ID, "Headphones", "headphones", 5)

	product.Name = "Studio Headphones"
	product.Price = 59.99
	if err := repo.UpdateProduct(product); err != nil {
		t.Fatalf("UpdateProduct() error = %v", err)
	}

	found, err := repo.FindProductByID(product.ID)
	if err != nil {
		t.Fatalf("FindProductByID() error = %v", err)
	}
	if found.Name != "Studio Headphones" || found.Price != 59.99 {
		t.Errorf("update not persisted: %+v", found)
	}

	missing := &Product{ID: "missing", Name: "x", Slug: "x", Description: "x", CategoryID: category.ID}
	if err := repo.UpdateProduct(missing); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}
