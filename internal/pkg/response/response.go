package response

import (
	"github.com/gofiber/fiber/v2"
)

// ErrorBody is the wire error shape consumed by the web client: a single
// human-readable message under "error".
type ErrorBody struct {
	Error string `json:"error"`
}

// Error sends an error response in the standard shape.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(ErrorBody{Error: message})
}

// Unauthorized sends 401 in the standard error shape.
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusUnauthorized)
}

// NotFound sends 404 in the standard error shape.
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, message, fiber.StatusNotFound)
}
