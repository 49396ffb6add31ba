package api

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/services"
)

var badRequestErrors = []error{
	services.ErrInvalidFoodEntry,
	services.ErrInvalidWeightEntry,
	services.ErrInvalidRecipe,
	services.ErrInvalidRecipeImage,
	services.ErrInvalidSettings,
	services.ErrInvalidBackup,
	services.ErrExportFromDateInvalid,
	services.ErrExportToDateInvalid,
	services.ErrExportRangeInvalid,
}

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// respondServiceError maps service sentinels to 400 and everything else to a logged 500.
func (handler *Handler) respondServiceError(c *fiber.Ctx, err error) error {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return apiError(c, fiber.StatusBadRequest, err.Error())
		}
	}

	handler.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return apiError(c, fiber.StatusInternalServerError, handler.translate(c, "api.internal"))
}

func (handler *Handler) respondNotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, handler.translate(c, "api.not_found"))
}

func (handler *Handler) respondInvalidInput(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusBadRequest, handler.translate(c, "api.invalid_input"))
}

func setAttachmentHeaders(c *fiber.Ctx, contentType string, filename string) {
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", filename))
}
