package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jngonzales/E-Commerce/domain/user"
	"github.com/jngonzales/E-Commerce/modules/auth"
)

// UserContextKey is the fiber locals key holding the authenticated
// user's claims.
const UserContextKey = "user"

// AuthRequired validates the bearer token and stores the caller's
// claims in the request locals.
func AuthRequired(authPort auth.AuthPort) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "authorization header required",
			})
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "invalid authorization header format",
			})
		}

		claims, err := authPort.ValidateToken(c.UserContext(), parts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: err.Error(),
			})
		}

		c.Locals(UserContextKey, claims)
		return c.Next()
	}
}

// AdminRequired rejects callers that are not admins. It must run after
// AuthRequired.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := ClaimsFromContext(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Message: "authentication required",
			})
		}
		if claims.Role != user.RoleAdmin {
			return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
				Message: "not authorized as admin",
			})
		}
		return c.Next()
	}
}

// ClaimsFromContext returns the claims stored by AuthRequired, or nil.
func ClaimsFromContext(c *fiber.Ctx) *user.Claims {
	claims, ok := c.Locals(UserContextKey).(*user.Claims)
	if !ok {
		return nil
	}
	return claims
}
