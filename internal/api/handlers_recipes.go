package api

import (
	"errors"
	"io"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/services"
)

const recipeImageField = "image"

func (handler *Handler) ListRecipes(c *fiber.Ctx) error {
	recipes, err := handler.services.Recipes.List()
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	return c.JSON(recipes)
}

// CreateRecipe accepts JSON or a multipart form whose "image" file becomes a data URL.
func (handler *Handler) CreateRecipe(c *fiber.Ctx) error {
	update, err := parseRecipeRequest(c)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecipeImage) {
			return handler.respondServiceError(c, err)
		}
		return handler.respondInvalidInput(c)
	}

	recipe, err := handler.services.Recipes.Create(services.RecipeInput{
		Name:         valueOrEmpty(update.Name),
		Calories:     valueOrEmpty(update.Calories),
		Ingredients:  valueOrEmpty(update.Ingredients),
		Instructions: valueOrEmpty(update.Instructions),
		Image:        valueOrEmpty(update.Image),
	})
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(recipe)
}

func (handler *Handler) GetRecipe(c *fiber.Ctx) error {
	recipe, found, err := handler.services.Recipes.Find(c.Params("id"))
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(recipe)
}

func (handler *Handler) UpdateRecipe(c *fiber.Ctx) error {
	update, err := parseRecipeRequest(c)
	if err != nil {
		if errors.Is(err, services.ErrInvalidRecipeImage) {
			return handler.respondServiceError(c, err)
		}
		return handler.respondInvalidInput(c)
	}

	recipe, found, err := handler.services.Recipes.Update(c.Params("id"), update)
	if err != nil {
		return handler.respondServiceError(c, err)
	}
	if !found {
		return handler.respondNotFound(c)
	}
	return c.JSON(recipe)
}

func (handler *Handler) DeleteRecipe(c *fiber.Ctx) error {
	if err := handler.services.Recipes.Delete(c.Params("id")); err != nil {
		return handler.respondServiceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseRecipeRequest reads the recipe fields present in the request. Fields the client did not
// send stay nil so updates leave them untouched.
func parseRecipeRequest(c *fiber.Ctx) (models.RecipeUpdate, error) {
	update := models.RecipeUpdate{}
	if !strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		err := c.BodyParser(&update)
		return update, err
	}

	form, err := c.MultipartForm()
	if err != nil {
		return update, err
	}
	update.Name = formField(form, "name")
	update.Calories = formField(form, "calories")
	update.Ingredients = formField(form, "ingredients")
	update.Instructions = formField(form, "instructions")
	update.Image = formField(form, recipeImageField)

	files := form.File[recipeImageField]
	if len(files) == 0 {
		return update, nil
	}
	image, err := readImageDataURL(files[0])
	if err != nil {
		return update, err
	}
	update.Image = &image
	return update, nil
}

func readImageDataURL(header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxRecipeImageBytes+1))
	if err != nil {
		return "", err
	}
	return services.EncodeImageDataURL(header.Header.Get(fiber.HeaderContentType), data)
}

func formField(form *multipart.Form, name string) *string {
	values, ok := form.Value[name]
	if !ok || len(values) == 0 {
		return nil
	}
	value := values[0]
	return &value
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
