package db

import (
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/nibble/internal/storage"
)

// Store keys. Each repository owns exactly one.
const (
	FoodEntriesKey   = "nibble.food_entries"
	WeightEntriesKey = "nibble.weight_entries"
	RecipesKey       = "nibble.recipes"
	SettingsKey      = "nibble.settings"
	SessionKey       = "nibble.session"
)

type Repositories struct {
	FoodEntries   *FoodEntryRepository
	WeightEntries *WeightEntryRepository
	Recipes       *RecipeRepository
	Settings      *SettingsRepository
	Session       *SessionRepository
}

func NewRepositories(store *storage.Store, location *time.Location) *Repositories {
	return &Repositories{
		FoodEntries:   NewFoodEntryRepository(store, location),
		WeightEntries: NewWeightEntryRepository(store),
		Recipes:       NewRecipeRepository(store),
		Settings:      NewSettingsRepository(store),
		Session:       NewSessionRepository(store),
	}
}

// newRecordID returns a UUIDv7: ordered by wall-clock milliseconds and unique within
// the same millisecond.
func newRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func readList[T any](store *storage.Store, key string) ([]T, error) {
	items := make([]T, 0)
	if _, err := store.Read(key, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = make([]T, 0)
	}
	return items, nil
}
