package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jngonzales/E-Commerce/domain/user"
	"github.com/jngonzales/E-Commerce/modules/order"
)

// placeOrder handles POST /api/orders.
func (m *APIModule) placeOrder(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	var body placeOrderBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	items := make([]order.OrderItemInput, 0, len(body.OrderItems))
	for _, it := range body.OrderItems {
		items = append(items, order.OrderItemInput{
			ProductID: it.Product,
			Name:      it.Name,
			Image:     it.Image,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	resp, err := m.order.PlaceOrder(c.UserContext(), order.PlaceOrderRequest{
		UserID:     claims.UserID,
		OrderItems: items,
		ShippingAddress: order.ShippingAddress{
			FullName:   body.ShippingAddress.FullName,
			Address:    body.ShippingAddress.Address,
			City:       body.ShippingAddress.City,
			PostalCode: body.ShippingAddress.PostalCode,
			Country:    body.ShippingAddress.Country,
			Phone:      body.ShippingAddress.Phone,
		},
		PaymentMethod: body.PaymentMethod,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// myOrders handles GET /api/orders.
func (m *APIModule) myOrders(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	resp, err := m.order.MyOrders(c.UserContext(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// getOrder handles GET /api/orders/:id. Owners see their own orders;
// admins see any.
func (m *APIModule) getOrder(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)

	resp, err := m.order.GetOrder(c.UserContext(), order.GetOrderRequest{
		OrderID: c.Params("id"),
		UserID:  claims.UserID,
		IsAdmin: claims.Role == user.RoleAdmin,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// allOrders handles GET /api/orders/admin/all.
func (m *APIModule) allOrders(c *fiber.Ctx) error {
	resp, err := m.order.AllOrders(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}

// updateOrderStatus handles PUT /api/orders/:id/status.
func (m *APIModule) updateOrderStatus(c *fiber.Ctx) error {
	var body updateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.order.UpdateStatus(c.UserContext(), order.UpdateStatusRequest{
		OrderID: c.Params("id"),
		Status:  body.Status,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(resp)
}
