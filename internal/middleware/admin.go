package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// AdminTokenHeader carries the staff token on admin routes.
const AdminTokenHeader = "X-Admin-Token"

// AdminRequired guards staff routes with a static token.
// An empty token disables the routes entirely.
func AdminRequired(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin access is disabled",
			})
		}
		given := c.Get(AdminTokenHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid admin token",
			})
		}
		return c.Next()
	}
}
