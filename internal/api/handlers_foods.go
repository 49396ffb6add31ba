package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/services"
)

// ListFoods returns one day with ?date, an inclusive range with ?from&to, or the whole log.
func (handler *Handler) ListFoods(c *fiber.Ctx) error {
	var (
		entries []models.FoodEntry
		err     error
	)
	switch {
	case c.Query("date") != "":
		entries, err = handler.services.Foods.ListForDay(c.Query("date"))
	case c.Query("from") != "" || c.Query("to") != "":
		entries, err = handler.services.Foods.ListForRange(c.Query("from"), c.Query("to"))
	default:
		entries, err = handler.services.Foods.List()
	}
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if entries == nil {
		entries = []models.FoodEntry{}
	}
	return c.JSON(entries)
}

func (handler *Handler) CreateFood(c *fiber.Ctx) error {
	input := services.FoodEntryInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.respondInvalidInput(c)
	}

	entry, err := handler.services.Foods.Create(input)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) GetFood(c *fiber.Ctx) error {
	entry, found, err := handler.services.Foods.Find(c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(entry)
}

func (handler *Handler) UpdateFood(c *fiber.Ctx) error {
	update := models.FoodEntryUpdate{}
	if err := c.BodyParser(&update); err != nil {
		return handler.respondInvalidInput(c)
	}

	entry, found, err := handler.services.Foods.Update(c.Params("id"), update)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(entry)
}

func (handler *Handler) DeleteFood(c *fiber.Ctx) error {
	if err := handler.services.Foods.Delete(c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
