package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
)

var errStubStorage = errors.New("stub storage failure")

type stubFoodRepo struct {
	entries    []models.FoodEntry
	err        error
	created    []models.FoodEntry
	lastUpdate models.FoodEntryUpdate
	replaced   []models.FoodEntry
	cleared    bool
}

func (stub *stubFoodRepo) List() ([]models.FoodEntry, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return append([]models.FoodEntry(nil), stub.entries...), nil
}

func (stub *stubFoodRepo) Create(entry models.FoodEntry) (models.FoodEntry, error) {
	if stub.err != nil {
		return models.FoodEntry{}, stub.err
	}
	entry.ID = "food-1"
	stub.created = append(stub.created, entry)
	stub.entries = append(stub.entries, entry)
	return entry, nil
}

func (stub *stubFoodRepo) Update(id string, update models.FoodEntryUpdate) (models.FoodEntry, bool, error) {
	if stub.err != nil {
		return models.FoodEntry{}, false, stub.err
	}
	stub.lastUpdate = update
	for index := range stub.entries {
		if stub.entries[index].ID == id {
			stub.entries[index] = stub.entries[index].Apply(update)
			return stub.entries[index], true, nil
		}
	}
	return models.FoodEntry{}, false, nil
}

func (stub *stubFoodRepo) Delete(string) error {
	return stub.err
}

func (stub *stubFoodRepo) FindByID(id string) (models.FoodEntry, bool, error) {
	if stub.err != nil {
		return models.FoodEntry{}, false, stub.err
	}
	for _, entry := range stub.entries {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.FoodEntry{}, false, nil
}

func (stub *stubFoodRepo) ByDate(day time.Time) ([]models.FoodEntry, error) {
	return stub.ByDateRange(day, day)
}

func (stub *stubFoodRepo) ByDateRange(start time.Time, end time.Time) ([]models.FoodEntry, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	from := dates.FormatISO(start)
	to := dates.FormatISO(end)
	matched := make([]models.FoodEntry, 0)
	for _, entry := range stub.entries {
		if entry.Date >= from && entry.Date <= to {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

func (stub *stubFoodRepo) ReplaceAll(entries []models.FoodEntry) error {
	if stub.err != nil {
		return stub.err
	}
	stub.replaced = entries
	return nil
}

func (stub *stubFoodRepo) Clear() error {
	if stub.err != nil {
		return stub.err
	}
	stub.cleared = true
	return nil
}

type stubWeightRepo struct {
	entries  []models.WeightEntry
	err      error
	replaced []models.WeightEntry
	cleared  bool
}

func (stub *stubWeightRepo) List() ([]models.WeightEntry, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return append([]models.WeightEntry(nil), stub.entries...), nil
}

func (stub *stubWeightRepo) Create(entry models.WeightEntry) (models.WeightEntry, error) {
	if stub.err != nil {
		return models.WeightEntry{}, stub.err
	}
	entry.ID = "weight-1"
	stub.entries = append(stub.entries, entry)
	return entry, nil
}

func (stub *stubWeightRepo) Update(id string, update models.WeightEntryUpdate) (models.WeightEntry, bool, error) {
	if stub.err != nil {
		return models.WeightEntry{}, false, stub.err
	}
	for index := range stub.entries {
		if stub.entries[index].ID == id {
			stub.entries[index] = stub.entries[index].Apply(update)
			return stub.entries[index], true, nil
		}
	}
	return models.WeightEntry{}, false, nil
}

func (stub *stubWeightRepo) Delete(string) error {
	return stub.err
}

func (stub *stubWeightRepo) FindByID(id string) (models.WeightEntry, bool, error) {
	for _, entry := range stub.entries {
		if entry.ID == id {
			return entry, true, stub.err
		}
	}
	return models.WeightEntry{}, false, stub.err
}

func (stub *stubWeightRepo) Latest() (models.WeightEntry, bool, error) {
	if stub.err != nil || len(stub.entries) == 0 {
		return models.WeightEntry{}, false, stub.err
	}
	return stub.entries[len(stub.entries)-1], true, nil
}

func (stub *stubWeightRepo) ReplaceAll(entries []models.WeightEntry) error {
	if stub.err != nil {
		return stub.err
	}
	stub.replaced = entries
	return nil
}

func (stub *stubWeightRepo) Clear() error {
	if stub.err != nil {
		return stub.err
	}
	stub.cleared = true
	return nil
}

type stubSettingsRepo struct {
	settings models.Settings
	err      error
	replaced *models.Settings
	cleared  bool
}

func (stub *stubSettingsRepo) Load() (models.Settings, error) {
	if stub.err != nil {
		return models.Settings{}, stub.err
	}
	return stub.settings.WithDefaults(), nil
}

func (stub *stubSettingsRepo) Save(update models.SettingsUpdate) (models.Settings, error) {
	if stub.err != nil {
		return models.Settings{}, stub.err
	}
	stub.settings = stub.settings.Apply(update)
	return stub.settings, nil
}

func (stub *stubSettingsRepo) Replace(settings models.Settings) error {
	if stub.err != nil {
		return stub.err
	}
	stub.replaced = &settings
	return nil
}

func (stub *stubSettingsRepo) Clear() error {
	if stub.err != nil {
		return stub.err
	}
	stub.cleared = true
	stub.settings = models.Settings{}
	return nil
}

type stubRecipeRepo struct {
	recipes  []models.Recipe
	err      error
	replaced []models.Recipe
}

func (stub *stubRecipeRepo) List() ([]models.Recipe, error) {
	if stub.err != nil {
		return nil, stub.err
	}
	return append([]models.Recipe(nil), stub.recipes...), nil
}

func (stub *stubRecipeRepo) Create(recipe models.Recipe) (models.Recipe, error) {
	if stub.err != nil {
		return models.Recipe{}, stub.err
	}
	recipe.ID = "recipe-1"
	stub.recipes = append(stub.recipes, recipe)
	return recipe, nil
}

func (stub *stubRecipeRepo) Update(id string, update models.RecipeUpdate) (models.Recipe, bool, error) {
	if stub.err != nil {
		return models.Recipe{}, false, stub.err
	}
	for index := range stub.recipes {
		if stub.recipes[index].ID == id {
			stub.recipes[index] = stub.recipes[index].Apply(update)
			return stub.recipes[index], true, nil
		}
	}
	return models.Recipe{}, false, nil
}

func (stub *stubRecipeRepo) Delete(string) error {
	return stub.err
}

func (stub *stubRecipeRepo) FindByID(id string) (models.Recipe, bool, error) {
	for _, recipe := range stub.recipes {
		if recipe.ID == id {
			return recipe, true, stub.err
		}
	}
	return models.Recipe{}, false, stub.err
}

func (stub *stubRecipeRepo) ReplaceAll(recipes []models.Recipe) error {
	if stub.err != nil {
		return stub.err
	}
	stub.replaced = recipes
	return nil
}

type stubSessionRepo struct {
	record  models.SessionRecord
	found   bool
	loadErr error
	saveErr error
	saves   int
}

func (stub *stubSessionRepo) Load() (models.SessionRecord, bool, error) {
	if stub.loadErr != nil {
		return models.SessionRecord{}, false, stub.loadErr
	}
	return stub.record, stub.found, nil
}

func (stub *stubSessionRepo) Update(mutate func(record *models.SessionRecord) error) (models.SessionRecord, error) {
	if stub.loadErr != nil {
		return models.SessionRecord{}, stub.loadErr
	}
	record := stub.record
	if err := mutate(&record); err != nil {
		return models.SessionRecord{}, err
	}
	if stub.saveErr != nil {
		return models.SessionRecord{}, stub.saveErr
	}
	stub.record = record
	stub.found = true
	stub.saves++
	return record, nil
}

func (stub *stubRecipeRepo) Clear() error {
	if stub.err != nil {
		return stub.err
	}
	stub.recipes = nil
	return nil
}
