package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/nibble/internal/models"
)

var (
	ErrInvalidSettings    = errors.New("invalid settings")
	ErrSettingsLoadFailed = errors.New("load settings failed")
	ErrSettingsSaveFailed = errors.New("save settings failed")
	ErrClearDataFailed    = errors.New("clear data failed")
)

type settingsUpdateRules struct {
	CalorieGoal *int    `validate:"omitempty,gt=0,lte=20000"`
	WeightUnit  *string `validate:"omitempty,oneof=kg lb"`
}

type SettingsRepository interface {
	Load() (models.Settings, error)
	Save(update models.SettingsUpdate) (models.Settings, error)
	Clear() error
}

// DataClearer empties one entity collection.
type DataClearer interface {
	Clear() error
}

type SettingsService struct {
	settings SettingsRepository
	clearers []DataClearer
}

// NewSettingsService takes the collections ClearAllData empties alongside the settings.
func NewSettingsService(settings SettingsRepository, clearers ...DataClearer) *SettingsService {
	return &SettingsService{
		settings: settings,
		clearers: clearers,
	}
}

func (service *SettingsService) Load() (models.Settings, error) {
	settings, err := service.settings.Load()
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsLoadFailed, err)
	}
	return settings, nil
}

// Save merges update onto the stored settings. Unset fields keep their current values.
func (service *SettingsService) Save(update models.SettingsUpdate) (models.Settings, error) {
	rules := settingsUpdateRules{CalorieGoal: update.CalorieGoal, WeightUnit: update.WeightUnit}
	if err := validate.Struct(rules); err != nil {
		return models.Settings{}, fmt.Errorf("%w: %s", ErrInvalidSettings, validationMessage(err))
	}

	saved, err := service.settings.Save(update)
	if err != nil {
		return models.Settings{}, fmt.Errorf("%w: %v", ErrSettingsSaveFailed, err)
	}
	return saved, nil
}

// ClearAllData removes every entity collection and resets settings to defaults.
func (service *SettingsService) ClearAllData() error {
	for _, clearer := range service.clearers {
		if err := clearer.Clear(); err != nil {
			return fmt.Errorf("%w: %v", ErrClearDataFailed, err)
		}
	}
	if err := service.settings.Clear(); err != nil {
		return fmt.Errorf("%w: %v", ErrClearDataFailed, err)
	}
	return nil
}
