package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// AdminOnly gates admin panel routes on the admin claim set at admin login.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsAdmin(c) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "access denied",
			})
		}
		return c.Next()
	}
}
