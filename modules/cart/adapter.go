package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// CartPort is the interface other modules use to access cart operations.
type CartPort interface {
	GetCart(ctx context.Context, userID string) (*CartResponse, error)
	AddItem(ctx context.Context, req AddItemRequest) (*CartResponse, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*CartResponse, error)
	RemoveItem(ctx context.Context, userID, itemID string) (*CartResponse, error)
	Clear(ctx context.Context, userID string) error
}

// cartAdapter implements CartPort using the service container.
type cartAdapter struct {
	container mono.ServiceContainer
}

// NewCartAdapter creates a new adapter for cart services.
func NewCartAdapter(container mono.ServiceContainer) CartPort {
	if container == nil {
		panic("cart adapter requires non-nil ServiceContainer")
	}
	return &cartAdapter{container: container}
}

func (a *cartAdapter) GetCart(ctx context.Context, userID string) (*CartResponse, error) {
	req := GetCartRequest{UserID: userID}
	var resp CartResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "get",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, fmt.Errorf("cart get service call failed: %w", err)
	}
	return &resp, nil
}

func (a *cartAdapter) AddItem(ctx context.Context, req AddItemRequest) (*CartResponse, error) {
	var resp CartResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "add-item",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *cartAdapter) UpdateItem(ctx context.Context, req UpdateItemRequest) (*CartResponse, error) {
	var resp CartResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "update-item",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *cartAdapter) RemoveItem(ctx context.Context, userID, itemID string) (*CartResponse, error) {
	req := RemoveItemRequest{UserID: userID, ItemID: itemID}
	var resp CartResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "remove-item",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return nil, restoreSentinel(err)
	}
	return &resp, nil
}

func (a *cartAdapter) Clear(ctx context.Context, userID string) error {
	req := ClearCartRequest{UserID: userID}
	var resp ClearCartResponse
	if err := helper.CallRequestReplyService(
		ctx, a.container, "clear",
		json.Marshal, json.Unmarshal, &req, &resp,
	); err != nil {
		return restoreSentinel(err)
	}
	return nil
}

// restoreSentinel maps errors flattened by the service container back to
// the package sentinels by message.
func restoreSentinel(err error) error {
	msg := err.Error()
	for _, sentinel := range []error{
		ErrCartNotFound,
		ErrItemNotFound,
		ErrProductNotFound,
		ErrInsufficientStock,
		ErrInvalidQuantity,
	} {
		if strings.Contains(msg, sentinel.Error()) {
			return sentinel
		}
	}
	return err
}
