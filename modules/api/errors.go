package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// statusForError maps service errors to HTTP status codes. Errors that
// crossed a module boundary arrive flattened to their message, so the
// mapping works on message content rather than sentinel identity.
func statusForError(err error) int {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "invalid email or password"),
		strings.Contains(msg, "invalid token"),
		strings.Contains(msg, "token has expired"):
		return fiber.StatusUnauthorized
	case strings.Contains(msg, "not authorized"):
		return fiber.StatusForbidden
	case strings.Contains(msg, "not found"):
		return fiber.StatusNotFound
	case strings.Contains(msg, "insufficient stock"),
		strings.Contains(msg, "already exists"),
		strings.Contains(msg, "already registered"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "must be"),
		strings.Contains(msg, "cannot be negative"),
		strings.Contains(msg, "no order items"),
		strings.Contains(msg, "referenced by products"),
		strings.Contains(msg, "invalid"):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

// fail writes the canonical error body with the mapped status code.
func fail(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(ErrorResponse{Message: err.Error()})
}

// badRequest writes a 400 with a fixed message, used for malformed input
// detected by the handler itself.
func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Message: message})
}
