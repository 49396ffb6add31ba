package db

import (
	"fmt"

	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/storage"
)

type SettingsRepository struct {
	store *storage.Store
}

func NewSettingsRepository(store *storage.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Load returns the stored settings with defaults filled in for absent keys.
func (repo *SettingsRepository) Load() (models.Settings, error) {
	var settings models.Settings
	if _, err := repo.store.Read(SettingsKey, &settings); err != nil {
		return models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	return settings.WithDefaults(), nil
}

// Save merges update onto the current settings and persists the result.
func (repo *SettingsRepository) Save(update models.SettingsUpdate) (models.Settings, error) {
	var merged models.Settings
	err := repo.store.Transact(func() error {
		current, err := repo.Load()
		if err != nil {
			return err
		}
		merged = current.Apply(update)
		return repo.store.Write(SettingsKey, merged)
	})
	if err != nil {
		return models.Settings{}, err
	}
	return merged, nil
}

func (repo *SettingsRepository) Replace(settings models.Settings) error {
	settings = settings.WithDefaults()
	return repo.store.Transact(func() error {
		return repo.store.Write(SettingsKey, settings)
	})
}

func (repo *SettingsRepository) Clear() error {
	return repo.store.Transact(func() error {
		return repo.store.Remove(SettingsKey)
	})
}
