package models

import (
	"strings"
	"time"
)

type Recipe struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Calories     string    `json:"calories,omitempty"`
	Ingredients  string    `json:"ingredients,omitempty"`
	Instructions string    `json:"instructions,omitempty"`
	Image        string    `json:"image,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RecipeUpdate struct {
	Name         *string `json:"name"`
	Calories     *string `json:"calories"`
	Ingredients  *string `json:"ingredients"`
	Instructions *string `json:"instructions"`
	Image        *string `json:"image"`
}

func (recipe Recipe) Apply(update RecipeUpdate) Recipe {
	if update.Name != nil {
		recipe.Name = *update.Name
	}
	if update.Calories != nil {
		recipe.Calories = *update.Calories
	}
	if update.Ingredients != nil {
		recipe.Ingredients = *update.Ingredients
	}
	if update.Instructions != nil {
		recipe.Instructions = *update.Instructions
	}
	if update.Image != nil {
		recipe.Image = *update.Image
	}
	return recipe
}

// IngredientList splits the newline-delimited ingredients, dropping blank lines.
func (recipe Recipe) IngredientList() []string {
	lines := strings.Split(recipe.Ingredients, "\n")
	items := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(line)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
