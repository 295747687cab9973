package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jngonzales/E-Commerce/modules/cart"
)

// getCart handles GET /api/cart. A cart is created on first access.
func (m *APIModule) getCart(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	resp, err := m.cart.GetCart(c.UserContext(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// addToCart handles POST /api/cart.
func (m *APIModule) addToCart(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	var body addToCartBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.ProductID == "" {
		return badRequest(c, "product id is required")
	}

	resp, err := m.cart.AddItem(c.UserContext(), cart.AddItemRequest{
		UserID:    claims.UserID,
		ProductID: body.ProductID,
		Quantity:  body.Quantity,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// updateCartItem handles PUT /api/cart/:itemId.
func (m *APIModule) updateCartItem(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	var body updateCartItemBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.cart.UpdateItem(c.UserContext(), cart.UpdateItemRequest{
		UserID:   claims.UserID,
		ItemID:   c.Params("itemId"),
		Quantity: body.Quantity,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// removeCartItem handles DELETE /api/cart/:itemId. Removing an item
// that is already gone still succeeds.
func (m *APIModule) removeCartItem(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	resp, err := m.cart.RemoveItem(c.UserContext(), claims.UserID, c.Params("itemId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// clearCart handles DELETE /api/cart. The cart row survives; only the
// line items go.
func (m *APIModule) clearCart(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	if err := m.cart.Clear(c.UserContext(), claims.UserID); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cart cleared"})
}
