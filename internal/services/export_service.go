package services

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
)

const BackupVersion = 1

var (
	ErrExportFailed  = errors.New("export failed")
	ErrImportFailed  = errors.New("import failed")
	ErrInvalidBackup = errors.New("invalid backup")
)

var ExportCSVHeaders = []string{
	"Date",
	"Name",
	"Quantity",
	"Calories",
}

type ExportFoodStore interface {
	List() ([]models.FoodEntry, error)
	ByDateRange(start time.Time, end time.Time) ([]models.FoodEntry, error)
	ReplaceAll(entries []models.FoodEntry) error
}

type ExportWeightStore interface {
	List() ([]models.WeightEntry, error)
	ReplaceAll(entries []models.WeightEntry) error
}

type ExportRecipeStore interface {
	List() ([]models.Recipe, error)
	ReplaceAll(recipes []models.Recipe) error
}

type ExportSettingsStore interface {
	Load() (models.Settings, error)
	Replace(settings models.Settings) error
}

// Backup is the full-data document produced by export and accepted by import.
type Backup struct {
	Version       int                  `json:"version"`
	ExportedAt    time.Time            `json:"exportedAt"`
	FoodEntries   []models.FoodEntry   `json:"foodEntries"`
	WeightEntries []models.WeightEntry `json:"weightEntries"`
	Recipes       []models.Recipe      `json:"recipes"`
	Settings      models.Settings      `json:"settings"`
}

type ExportCSVRow struct {
	Date     string
	Name     string
	Quantity string
	Calories int
}

type ImportSummary struct {
	FoodEntries   int `json:"foodEntries"`
	WeightEntries int `json:"weightEntries"`
	Recipes       int `json:"recipes"`
}

type ExportService struct {
	foods    ExportFoodStore
	weights  ExportWeightStore
	recipes  ExportRecipeStore
	settings ExportSettingsStore
	location *time.Location
	now      func() time.Time
}

func NewExportService(foods ExportFoodStore, weights ExportWeightStore, recipes ExportRecipeStore, settings ExportSettingsStore, location *time.Location) *ExportService {
	if location == nil {
		location = time.Local
	}
	return &ExportService{
		foods:    foods,
		weights:  weights,
		recipes:  recipes,
		settings: settings,
		location: location,
		now:      time.Now,
	}
}

func (service *ExportService) BuildBackup() (Backup, error) {
	foods, err := service.foods.List()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	weights, err := service.weights.List()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	recipes, err := service.recipes.List()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	settings, err := service.settings.Load()
	if err != nil {
		return Backup{}, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	return Backup{
		Version:       BackupVersion,
		ExportedAt:    service.now().UTC(),
		FoodEntries:   foods,
		WeightEntries: weights,
		Recipes:       recipes,
		Settings:      settings,
	}, nil
}

// BuildCSVRows returns the food log sorted by date then creation time. Empty bounds are open.
func (service *ExportService) BuildCSVRows(rawFrom string, rawTo string) ([]ExportCSVRow, error) {
	entries, err := service.loadFoodRange(rawFrom, rawTo)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Date == entries[j].Date {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].Date < entries[j].Date
	})

	rows := make([]ExportCSVRow, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, ExportCSVRow{
			Date:     entry.Date,
			Name:     entry.Name,
			Quantity: entry.Quantity,
			Calories: entry.Calories,
		})
	}
	return rows, nil
}

func (row ExportCSVRow) Columns() []string {
	return []string{
		row.Date,
		row.Name,
		row.Quantity,
		strconv.Itoa(row.Calories),
	}
}

// ImportBackup validates backup and then replaces all four collections with its contents.
// Nothing is written when validation fails.
func (service *ExportService) ImportBackup(backup Backup) (ImportSummary, error) {
	if err := ValidateBackup(&backup); err != nil {
		return ImportSummary{}, err
	}

	if err := service.foods.ReplaceAll(backup.FoodEntries); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	if err := service.weights.ReplaceAll(backup.WeightEntries); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	if err := service.recipes.ReplaceAll(backup.Recipes); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}
	if err := service.settings.Replace(backup.Settings); err != nil {
		return ImportSummary{}, fmt.Errorf("%w: %v", ErrImportFailed, err)
	}

	return ImportSummary{
		FoodEntries:   len(backup.FoodEntries),
		WeightEntries: len(backup.WeightEntries),
		Recipes:       len(backup.Recipes),
	}, nil
}

// ValidateBackup checks every record and normalizes dates in place.
func ValidateBackup(backup *Backup) error {
	if backup.Version != BackupVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, backup.Version)
	}

	for index := range backup.FoodEntries {
		entry := &backup.FoodEntries[index]
		if strings.TrimSpace(entry.ID) == "" || strings.TrimSpace(entry.Name) == "" {
			return fmt.Errorf("%w: food entry %d: id and name are required", ErrInvalidBackup, index)
		}
		if entry.Calories < 0 {
			return fmt.Errorf("%w: food entry %d: negative calories", ErrInvalidBackup, index)
		}
		date, err := dates.NormalizeISO(entry.Date)
		if err != nil {
			return fmt.Errorf("%w: food entry %d: %v", ErrInvalidBackup, index, err)
		}
		entry.Date = date
	}

	for index := range backup.WeightEntries {
		entry := &backup.WeightEntries[index]
		if strings.TrimSpace(entry.ID) == "" {
			return fmt.Errorf("%w: weight entry %d: id is required", ErrInvalidBackup, index)
		}
		if entry.Weight <= 0 || entry.Weight > maxWeight {
			return fmt.Errorf("%w: weight entry %d: weight out of range", ErrInvalidBackup, index)
		}
		date, err := dates.NormalizeISO(entry.Date)
		if err != nil {
			return fmt.Errorf("%w: weight entry %d: %v", ErrInvalidBackup, index, err)
		}
		entry.Date = date
	}

	for index, recipe := range backup.Recipes {
		if strings.TrimSpace(recipe.ID) == "" || strings.TrimSpace(recipe.Name) == "" {
			return fmt.Errorf("%w: recipe %d: id and name are required", ErrInvalidBackup, index)
		}
		if err := ValidateImageDataURL(recipe.Image); err != nil {
			return fmt.Errorf("%w: recipe %d: %v", ErrInvalidBackup, index, err)
		}
	}

	settings := backup.Settings.WithDefaults()
	rules := settingsUpdateRules{CalorieGoal: &settings.CalorieGoal, WeightUnit: &settings.WeightUnit}
	if err := validate.Struct(rules); err != nil {
		return fmt.Errorf("%w: settings: %s", ErrInvalidBackup, validationMessage(err))
	}
	backup.Settings = settings
	return nil
}

func (service *ExportService) loadFoodRange(rawFrom string, rawTo string) ([]models.FoodEntry, error) {
	rawFrom = strings.TrimSpace(rawFrom)
	rawTo = strings.TrimSpace(rawTo)
	if rawFrom == "" && rawTo == "" {
		entries, err := service.foods.List()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
		}
		return entries, nil
	}

	from, to, err := ParseExportRange(rawFrom, rawTo, service.location)
	if err != nil {
		return nil, err
	}
	entries, err := service.foods.ByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return entries, nil
}
