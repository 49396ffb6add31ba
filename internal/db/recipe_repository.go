package db

import (
	"fmt"
	"time"

	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/storage"
)

type RecipeRepository struct {
	store *storage.Store
	now   func() time.Time
}

func NewRecipeRepository(store *storage.Store) *RecipeRepository {
	return &RecipeRepository{
		store: store,
		now:   time.Now,
	}
}

func (repo *RecipeRepository) List() ([]models.Recipe, error) {
	recipes, err := readList[models.Recipe](repo.store, RecipesKey)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

func (repo *RecipeRepository) Create(recipe models.Recipe) (models.Recipe, error) {
	recipe.ID = newRecordID()
	recipe.CreatedAt = repo.now().UTC()

	err := repo.store.Transact(func() error {
		recipes, err := repo.List()
		if err != nil {
			return err
		}
		recipes = append(recipes, recipe)
		return repo.store.Write(RecipesKey, recipes)
	})
	if err != nil {
		return models.Recipe{}, err
	}
	return recipe, nil
}

func (repo *RecipeRepository) Update(id string, update models.RecipeUpdate) (models.Recipe, bool, error) {
	var updated models.Recipe
	found := false

	err := repo.store.Transact(func() error {
		recipes, err := repo.List()
		if err != nil {
			return err
		}
		for index := range recipes {
			if recipes[index].ID != id {
				continue
			}
			recipes[index] = recipes[index].Apply(update)
			updated = recipes[index]
			found = true
			break
		}
		if !found {
			return nil
		}
		return repo.store.Write(RecipesKey, recipes)
	})
	if err != nil {
		return models.Recipe{}, false, err
	}
	return updated, found, nil
}

func (repo *RecipeRepository) Delete(id string) error {
	return repo.store.Transact(func() error {
		recipes, err := repo.List()
		if err != nil {
			return err
		}
		filtered := make([]models.Recipe, 0, len(recipes))
		for _, recipe := range recipes {
			if recipe.ID != id {
				filtered = append(filtered, recipe)
			}
		}
		return repo.store.Write(RecipesKey, filtered)
	})
}

func (repo *RecipeRepository) FindByID(id string) (models.Recipe, bool, error) {
	recipes, err := repo.List()
	if err != nil {
		return models.Recipe{}, false, err
	}
	for _, recipe := range recipes {
		if recipe.ID == id {
			return recipe, true, nil
		}
	}
	return models.Recipe{}, false, nil
}

func (repo *RecipeRepository) ReplaceAll(recipes []models.Recipe) error {
	if recipes == nil {
		recipes = make([]models.Recipe, 0)
	}
	return repo.store.Transact(func() error {
		return repo.store.Write(RecipesKey, recipes)
	})
}

func (repo *RecipeRepository) Clear() error {
	return repo.store.Transact(func() error {
		return repo.store.Remove(RecipesKey)
	})
}
