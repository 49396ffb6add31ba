package api

import "github.com/gofiber/fiber/v2"

// AuthRequired rejects API requests without a valid session cookie.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	if !handler.isAuthenticated(c) {
		return apiError(c, fiber.StatusUnauthorized, handler.translate(c, "api.unauthorized"))
	}
	return c.Next()
}
