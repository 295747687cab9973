package order

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// OrderPort is the interface the API module uses to access orders.
type OrderPort interface {
	PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error)
	MyOrders(ctx context.Context, userID string) (*OrderListResponse, error)
	GetOrder(ctx context.Context, req GetOrderRequest) (*OrderResponse, error)
	AllOrders(ctx context.Context) (*OrderListResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*OrderResponse, error)
}

// orderAdapter implements OrderPort using the service container.
type orderAdapter struct {
	container mono.ServiceContainer
}

// NewOrderAdapter creates a new adapter for order services.
func NewOrderAdapter(container mono.ServiceContainer) OrderPort {
	if container == nil {
		panic("order adapter requires non-nil ServiceContainer")
	}
	return &orderAdapter{container: container}
}

func (a *orderAdapter) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "place-order",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *orderAdapter) MyOrders(ctx context.Context, userID string) (*OrderListResponse, error) {
	req := MyOrdersRequest{UserID: userID}
	var resp OrderListResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "my-orders",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("my-orders service call failed: %w", err)
	}
	return &resp, nil
}

func (a *orderAdapter) GetOrder(ctx context.Context, req GetOrderRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get-order",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *orderAdapter) AllOrders(ctx context.Context) (*OrderListResponse, error) {
	req := AllOrdersRequest{}
	var resp OrderListResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "all-orders",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("all-orders service call failed: %w", err)
	}
	return &resp, nil
}

func (a *orderAdapter) UpdateStatus(ctx context.Context, req UpdateStatusRequest) (*OrderResponse, error) {
	var resp OrderResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-status",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

// restoreSentinel maps errors flattened by the service container back to
// the package sentinels by message.
func restoreSentinel(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrOrderNotFound,
		ErrProductNotFound,
		ErrInsufficientStock,
		ErrEmptyOrder,
		ErrInvalidQuantity,
		ErrForbidden,
		ErrInvalidStatus,
	} {
		if strings.Contains(msg, sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
