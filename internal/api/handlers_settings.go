package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/models"
)

func (handler *Handler) GetSettings(c *fiber.Ctx) error {
	settings, err := handler.services.Settings.Load()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(settings)
}

// UpdateSettings merges the sent keys onto the stored settings.
func (handler *Handler) UpdateSettings(c *fiber.Ctx) error {
	update := models.SettingsUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return handler.respondInvalidInput(c)
	}

	settings, err := handler.services.Settings.Save(update)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(settings)
}

// ClearAllData removes every entity collection. The PIN and session secret survive.
func (handler *Handler) ClearAllData(c *fiber.Ctx) error {
	if err := handler.services.Settings.ClearAllData(); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
