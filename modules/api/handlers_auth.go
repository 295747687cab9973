package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jngonzales/E-Commerce/modules/auth"
)

// register handles POST /api/auth/register.
func (m *APIModule) register(c *fiber.Ctx) error {
	var body registerBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.auth.Register(c.UserContext(), auth.RegisterRequest{
		Name:     body.Name,
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// login handles POST /api/auth/login.
func (m *APIModule) login(c *fiber.Ctx) error {
	var body loginBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	resp, err := m.auth.Login(c.UserContext(), auth.LoginRequest{
		Email:    body.Email,
		Password: body.Password,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}

// refresh handles POST /api/auth/refresh.
func (m *APIModule) refresh(c *fiber.Ctx) error {
	var body refreshBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.RefreshToken == "" {
		return badRequest(c, "refresh token is required")
	}

	resp, err := m.auth.Refresh(c.UserContext(), auth.RefreshRequest{
		RefreshToken: body.RefreshToken,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(resp)
}

// me handles GET /api/auth/me.
func (m *APIModule) me(c *fiber.Ctx) error {
	claims := ClaimsFromContext(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Message: "authentication required",
		})
	}

	u, err := m.auth.GetUser(c.UserContext(), claims.UserID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	})
}
