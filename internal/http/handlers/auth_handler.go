package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct{}

// GET /api/users/me returns the caller's user row, provisioning it on first sight
// when that is enabled.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return c.JSON(userFrom(c))
}
