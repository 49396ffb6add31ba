package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/nibble/internal/models"
)

var (
	ErrInvalidRecipe      = errors.New("invalid recipe")
	ErrInvalidRecipeImage = errors.New("invalid recipe image")
	ErrRecipeLoadFailed   = errors.New("load recipes failed")
	ErrRecipeSaveFailed   = errors.New("save recipe failed")
	ErrRecipeDeleteFailed = errors.New("delete recipe failed")
)

const MaxRecipeImageBytes = 2 << 20

type RecipeInput struct {
	Name         string `json:"name" validate:"required,max=200"`
	Calories     string `json:"calories" validate:"max=100"`
	Ingredients  string `json:"ingredients" validate:"max=10000"`
	Instructions string `json:"instructions" validate:"max=20000"`
	Image        string `json:"image"`
}

// recipeUpdateRules mirrors RecipeInput for partial updates; nil fields are skipped.
type recipeUpdateRules struct {
	Name         *string `validate:"omitempty,min=1,max=200"`
	Calories     *string `validate:"omitempty,max=100"`
	Ingredients  *string `validate:"omitempty,max=10000"`
	Instructions *string `validate:"omitempty,max=20000"`
}

type RecipeRepository interface {
	List() ([]models.Recipe, error)
	Create(recipe models.Recipe) (models.Recipe, error)
	Update(id string, update models.RecipeUpdate) (models.Recipe, bool, error)
	Delete(id string) error
	FindByID(id string) (models.Recipe, bool, error)
}

type RecipeService struct {
	recipes RecipeRepository
}

func NewRecipeService(recipes RecipeRepository) *RecipeService {
	return &RecipeService{recipes: recipes}
}

func (service *RecipeService) List() ([]models.Recipe, error) {
	recipes, err := service.recipes.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRecipeLoadFailed, err)
	}
	return recipes, nil
}

func (service *RecipeService) Find(id string) (models.Recipe, bool, error) {
	recipe, found, err := service.recipes.FindByID(id)
	if err != nil {
		return models.Recipe{}, false, fmt.Errorf("%w: %v", ErrRecipeLoadFailed, err)
	}
	return recipe, found, nil
}

func (service *RecipeService) Create(input RecipeInput) (models.Recipe, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Calories = strings.TrimSpace(input.Calories)
	if err := validate.Struct(input); err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %s", ErrInvalidRecipe, validationMessage(err))
	}
	if err := ValidateImageDataURL(input.Image); err != nil {
		return models.Recipe{}, err
	}

	created, err := service.recipes.Create(models.Recipe{
		Name:         input.Name,
		Calories:     input.Calories,
		Ingredients:  input.Ingredients,
		Instructions: input.Instructions,
		Image:        input.Image,
	})
	if err != nil {
		return models.Recipe{}, fmt.Errorf("%w: %v", ErrRecipeSaveFailed, err)
	}
	return created, nil
}

func (service *RecipeService) Update(id string, update models.RecipeUpdate) (models.Recipe, bool, error) {
	update.Name = trimmedPointer(update.Name)
	update.Calories = trimmedPointer(update.Calories)
	rules := recipeUpdateRules{
		Name:         update.Name,
		Calories:     update.Calories,
		Ingredients:  update.Ingredients,
		Instructions: update.Instructions,
	}
	if err := validate.Struct(rules); err != nil {
		return models.Recipe{}, false, fmt.Errorf("%w: %s", ErrInvalidRecipe, validationMessage(err))
	}
	if update.Image != nil {
		if err := ValidateImageDataURL(*update.Image); err != nil {
			return models.Recipe{}, false, err
		}
	}

	updated, found, err := service.recipes.Update(id, update)
	if err != nil {
		return models.Recipe{}, false, fmt.Errorf("%w: %v", ErrRecipeSaveFailed, err)
	}
	return updated, found, nil
}

func (service *RecipeService) Delete(id string) error {
	if err := service.recipes.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrRecipeDeleteFailed, err)
	}
	return nil
}

// EncodeImageDataURL turns an uploaded image into the base64 data URL stored on a recipe.
func EncodeImageDataURL(contentType string, data []byte) (string, error) {
	mediaType := strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0]))
	if !strings.HasPrefix(mediaType, "image/") {
		return "", fmt.Errorf("%w: unsupported content type %q", ErrInvalidRecipeImage, contentType)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty file", ErrInvalidRecipeImage)
	}
	if len(data) > MaxRecipeImageBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", ErrInvalidRecipeImage, MaxRecipeImageBytes)
	}
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ValidateImageDataURL accepts "" (no image) or a base64 image data URL.
func ValidateImageDataURL(raw string) error {
	if raw == "" {
		return nil
	}

	header, payload, ok := strings.Cut(raw, ",")
	if !ok || !strings.HasPrefix(header, "data:image/") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("%w: expected base64 image data URL", ErrInvalidRecipeImage)
	}
	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRecipeImage, err)
	}
	if len(decoded) > MaxRecipeImageBytes {
		return fmt.Errorf("%w: image exceeds %d bytes", ErrInvalidRecipeImage, MaxRecipeImageBytes)
	}
	return nil
}
