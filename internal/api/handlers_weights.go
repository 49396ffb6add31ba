package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/services"
)

func (handler *Handler) ListWeights(c *fiber.Ctx) error {
	entries, err := handler.services.Weights.List()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.WeightEntry{}
	}
	return c.JSON(entries)
}

func (handler *Handler) LatestWeight(c *fiber.Ctx) error {
	entry, found, err := handler.services.Weights.Latest()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(entry)
}

// SaveWeight records a weight; an existing entry for the same date is updated in place.
func (handler *Handler) SaveWeight(c *fiber.Ctx) error {
	input := services.WeightEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondInvalidInput(c)
	}

	entry, err := handler.services.Weights.Save(input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) GetWeight(c *fiber.Ctx) error {
	entry, found, err := handler.services.Weights.Find(c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(entry)
}

func (handler *Handler) UpdateWeight(c *fiber.Ctx) error {
	update := models.WeightEntryUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return handler.respondInvalidInput(c)
	}

	entry, found, err := handler.services.Weights.Update(c.Params("id"), update)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteWeight(c *fiber.Ctx) error {
	if err := handler.services.Weights.Delete(c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
