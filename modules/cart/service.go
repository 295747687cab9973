package cart

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jngonzales/E-Commerce/modules/catalog"
)

var (
	// ErrInvalidQuantity is returned when a quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrInsufficientStock is returned when the requested quantity
	// exceeds the product's current stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrProductNotFound mirrors the catalog sentinel for cart callers.
	ErrProductNotFound = errors.New("product not found")
)

// CartService handles cart business logic. Product lookups go through the
// catalog port; prices are snapshotted onto line items at add time.
type CartService struct {
	repo    *Repository
	catalog catalog.CatalogPort
}

// NewCartService creates a new CartService.
func NewCartService(repo *Repository, catalogPort catalog.CatalogPort) *CartService {
	return &CartService{
		repo:    repo,
		catalog: catalogPort,
	}
}

// GetCart returns the user's cart, creating an empty one on first access.
func (s *CartService) GetCart(ctx context.Context, userID string) (CartResponse, error) {
	cart, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return CartResponse{}, err
	}
	return s.expand(ctx, cart), nil
}

// AddItem adds a product to the cart. Adding a product already in the
// cart increments its quantity instead of creating a second line item.
func (s *CartService) AddItem(ctx context.Context, userID, productID string, quantity int) (CartResponse, error) {
	if quantity < 1 {
		return CartResponse{}, ErrInvalidQuantity
	}

	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return CartResponse{}, ErrProductNotFound
		}
		return CartResponse{}, err
	}
	if product.Stock < quantity {
		return CartResponse{}, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
	}

	cart, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return CartResponse{}, err
	}

	if existing := findItemByProduct(cart, productID); existing != nil {
		if err := s.repo.UpdateItemQuantity(existing.ID, existing.Quantity+quantity); err != nil {
			return CartResponse{}, err
		}
	} else {
		item := &CartItem{
			ID:        uuid.New().String(),
			CartID:    cart.ID,
			ProductID: productID,
			Quantity:  quantity,
			Price:     product.Price, // snapshot of the current price
		}
		if err := s.repo.CreateItem(item); err != nil {
			return CartResponse{}, err
		}
	}

	return s.reload(ctx, userID)
}

// UpdateItem overwrites a line item's quantity after re-validating it
// against the product's current stock. The price snapshot is untouched.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (CartResponse, error) {
	if quantity < 1 {
		return CartResponse{}, ErrInvalidQuantity
	}

	cart, err := s.repo.FindByUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	item := findItemByID(cart, itemID)
	if item == nil {
		return CartResponse{}, ErrItemNotFound
	}

	product, err := s.catalog.GetProduct(ctx, item.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return CartResponse{}, ErrProductNotFound
		}
		return CartResponse{}, err
	}
	if product.Stock < quantity {
		return CartResponse{}, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
	}

	if err := s.repo.UpdateItemQuantity(item.ID, quantity); err != nil {
		return CartResponse{}, err
	}

	return s.reload(ctx, userID)
}

// RemoveItem filters a line item out of the cart. Removing an item that
// is already gone succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (CartResponse, error) {
	cart, err := s.repo.FindByUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}

	if err := s.repo.DeleteItem(cart.ID, itemID); err != nil {
		return CartResponse{}, err
	}

	return s.reload(ctx, userID)
}

// Clear empties the cart's item list, keeping the cart itself.
func (s *CartService) Clear(_ context.Context, userID string) error {
	cart, err := s.repo.FindByUserID(userID)
	if err != nil {
		return err
	}
	return s.repo.ClearItems(cart.ID)
}

// reload re-reads the cart and expands its items.
func (s *CartService) reload(ctx context.Context, userID string) (CartResponse, error) {
	cart, err := s.repo.FindByUserID(userID)
	if err != nil {
		return CartResponse{}, err
	}
	return s.expand(ctx, cart), nil
}

// expand attaches product details to each line item. Vanished products
// leave a nil product on the item rather than failing the whole cart.
func (s *CartService) expand(ctx context.Context, cart *Cart) CartResponse {
	resp := CartResponse{
		ID:     cart.ID,
		UserID: cart.UserID,
		Items:  make([]CartItemResponse, 0, len(cart.Items)),
	}

	for _, item := range cart.Items {
		ir := CartItemResponse{
			ID:       item.ID,
			Quantity: item.Quantity,
			Price:    item.Price,
		}

		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if !errors.Is(err, catalog.ErrProductNotFound) {
				log.Printf("[cart] failed to expand product %s: %v", item.ProductID, err)
			}
		} else {
			ir.Product = &CartProduct{
				ID:     product.ID,
				Name:   product.Name,
				Slug:   product.Slug,
				Price:  product.Price,
				Images: product.Images,
				Stock:  product.Stock,
			}
		}

		resp.Items = append(resp.Items, ir)
	}

	return resp
}

func findItemByProduct(cart *Cart, productID string) *CartItem {
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i]
		}
	}
	return nil
}

func findItemByID(cart *Cart, itemID string) *CartItem {
	for i := range cart.Items {
		if cart.Items[i].ID == itemID {
			return &cart.Items[i]
		}
	}
	return nil
}
