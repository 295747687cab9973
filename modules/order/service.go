package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jngonzales/E-Commerce/modules/auth"
	"github.com/jngonzales/E-Commerce/modules/cart"
	"github.com/jngonzales/E-Commerce/modules/catalog"
)

var (
	// ErrEmptyOrder is returned for an order with no items.
	ErrEmptyOrder = errors.New("no order items")
	// ErrInvalidQuantity is returned when an item quantity is below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrProductNotFound is returned when an ordered product does not exist.
	ErrProductNotFound = errors.New("product not found")
	// ErrInsufficientStock is returned when an item quantity exceeds stock.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrForbidden is returned when a caller reads an order they do not own.
	ErrForbidden = errors.New("not authorized to view this order")
	// ErrInvalidStatus is returned for an unknown order status.
	ErrInvalidStatus = errors.New("invalid order status")
)

// OrderService turns carts into orders. Stock moves through the catalog
// port's conditional decrement; a failure mid-order restores everything
// already taken, so no order row ever exists with stock only partially
// reserved.
type OrderService struct {
	repo    *Repository
	catalog catalog.CatalogPort
	cart    cart.CartPort
	auth    auth.AuthPort
}

// NewOrderService creates a new OrderService.
func NewOrderService(repo *Repository, catalogPort catalog.CatalogPort, cartPort cart.CartPort, authPort auth.AuthPort) *OrderService {
	return &OrderService{
		repo:    repo,
		catalog: catalogPort,
		cart:    cartPort,
		auth:    authPort,
	}
}

// PlaceOrder validates the requested items, reserves stock, persists the
// order and clears the caller's cart.
func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (OrderResponse, error) {
	if len(req.OrderItems) == 0 {
		return OrderResponse{}, ErrEmptyOrder
	}
	for _, item := range req.OrderItems {
		if item.Quantity < 1 {
			return OrderResponse{}, ErrInvalidQuantity
		}
	}

	// Validate every item against the live catalog before touching any
	// stock, and take the name/image snapshots from the catalog rather
	// than trusting the payload for them.
	items := make([]OrderItemInput, len(req.OrderItems))
	for i, item := range req.OrderItems {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				return OrderResponse{}, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			return OrderResponse{}, err
		}
		if product.Stock < item.Quantity {
			return OrderResponse{}, fmt.Errorf("%w for %s", ErrInsufficientStock, product.Name)
		}

		items[i] = item
		items[i].Name = product.Name
		if len(product.Images) > 0 {
			items[i].Image = product.Images[0]
		}
	}

	// The item price is the cart's snapshot supplied by the caller, so a
	// catalog price change between add-to-cart and checkout does not
	// silently reprice the order.
	prices := ComputePrices(items)

	// Reserve stock first, one conditional decrement per item. A loss to
	// a concurrent order rolls back what this order already took.
	if err := s.reserveStock(ctx, items); err != nil {
		return OrderResponse{}, err
	}

	order := &Order{
		ID:              uuid.New().String(),
		UserID:          req.UserID,
		Items:           make([]OrderItem, 0, len(items)),
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		ItemsPrice:      prices.ItemsPrice,
		ShippingPrice:   prices.ShippingPrice,
		TaxPrice:        prices.TaxPrice,
		TotalPrice:      prices.TotalPrice,
		Status:          StatusPending,
		IsPaid:          false,
		IsDelivered:     false,
	}
	for _, item := range items {
		order.Items = append(order.Items, OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.repo.Create(order); err != nil {
		s.releaseStock(ctx, items)
		return OrderResponse{}, err
	}

	// A failed cart clear is logged, not surfaced: the order exists and
	// the cart can still be cleared manually.
	if err := s.cart.Clear(ctx, req.UserID); err != nil && !errors.Is(err, cart.ErrCartNotFound) {
		log.Printf("[order] failed to clear cart for user %s: %v", req.UserID, err)
	}

	return toOrderResponse(order, nil), nil
}

// reserveStock decrements stock for each item, compensating on failure.
func (s *OrderService) reserveStock(ctx context.Context, items []OrderItemInput) error {
	taken := make([]OrderItemInput, 0, len(items))
	for _, item := range items {
		resp, err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			s.releaseStock(ctx, taken)
			return err
		}
		if !resp.Decremented {
			s.releaseStock(ctx, taken)
			if resp.Reason == catalog.StockReasonNotFound {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			return fmt.Errorf("%w for %s", ErrInsufficientStock, item.Name)
		}
		taken = append(taken, item)
	}
	return nil
}

// releaseStock returns previously decremented stock after a failure.
func (s *OrderService) releaseStock(ctx context.Context, items []OrderItemInput) {
	for _, item := range items {
		if err := s.catalog.RestoreStock(ctx, item.ProductID, item.Quantity); err != nil {
			log.Printf("[order] failed to restore %d units of %s: %v", item.Quantity, item.ProductID, err)
		}
	}
}

// MyOrders lists the caller's orders, newest first.
func (s *OrderService) MyOrders(_ context.Context, userID string) (OrderListResponse, error) {
	orders, err := s.repo.FindByUserID(userID)
	if err != nil {
		return OrderListResponse{}, err
	}

	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		resp.Orders = append(resp.Orders, toOrderResponse(o, nil))
	}
	return resp, nil
}

// GetOrder fetches one order, visible only to its owner or an admin.
func (s *OrderService) GetOrder(ctx context.Context, req GetOrderRequest) (OrderResponse, error) {
	order, err := s.repo.FindByID(req.OrderID)
	if err != nil {
		return OrderResponse{}, err
	}

	if order.UserID != req.UserID && !req.IsAdmin {
		return OrderResponse{}, ErrForbidden
	}

	return toOrderResponse(order, s.lookupOwner(ctx, order.UserID)), nil
}

// AllOrders lists every order for admins, owners expanded, newest first.
func (s *OrderService) AllOrders(ctx context.Context) (OrderListResponse, error) {
	orders, err := s.repo.FindAll()
	if err != nil {
		return OrderListResponse{}, err
	}

	// Orders from the same user share one lookup.
	owners := make(map[string]*OrderOwner)
	resp := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(orders)),
		Total:  len(orders),
	}
	for _, o := range orders {
		owner, ok := owners[o.UserID]
		if !ok {
			owner = s.lookupOwner(ctx, o.UserID)
			owners[o.UserID] = owner
		}
		resp.Orders = append(resp.Orders, toOrderResponse(o, owner))
	}
	return resp, nil
}

// UpdateStatus sets a new status on an order. Statuses outside the known
// set are rejected; transitions between known statuses are not restricted.
// Setting "delivered" also stamps the delivery fields.
func (s *OrderService) UpdateStatus(_ context.Context, req UpdateStatusRequest) (OrderResponse, error) {
	if !ValidStatus(req.Status) {
		return OrderResponse{}, fmt.Errorf("%w: %s", ErrInvalidStatus, req.Status)
	}

	order, err := s.repo.FindByID(req.OrderID)
	if err != nil {
		return OrderResponse{}, err
	}

	order.Status = req.Status
	if req.Status == StatusDelivered {
		now := time.Now()
		order.IsDelivered = true
		order.DeliveredAt = &now
	}

	if err := s.repo.UpdateStatus(order); err != nil {
		return OrderResponse{}, err
	}

	return toOrderResponse(order, nil), nil
}

// lookupOwner expands an order's owning user; a lookup failure leaves the
// owner unexpanded rather than failing the read.
func (s *OrderService) lookupOwner(ctx context.Context, userID string) *OrderOwner {
	owner, err := s.auth.GetUser(ctx, userID)
	if err != nil {
		log.Printf("[order] failed to expand owner %s: %v", userID, err)
		return nil
	}
	return &OrderOwner{
		ID:    owner.ID,
		Name:  owner.Name,
		Email: owner.Email,
	}
}

// toOrderResponse converts an Order entity to an OrderResponse.
func toOrderResponse(o *Order, owner *OrderOwner) OrderResponse {
	resp := OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		User:            owner,
		Items:           make([]OrderItemResponse, 0, len(o.Items)),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		ItemsPrice:      o.ItemsPrice,
		ShippingPrice:   o.ShippingPrice,
		TaxPrice:        o.TaxPrice,
		TotalPrice:      o.TotalPrice,
		Status:          o.Status,
		IsPaid:          o.IsPaid,
		PaidAt:          o.PaidAt,
		IsDelivered:     o.IsDelivered,
		DeliveredAt:     o.DeliveredAt,
		CreatedAt:       o.CreatedAt,
	}
	for _, item := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Image:     item.Image,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}
