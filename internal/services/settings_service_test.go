package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/nibble/internal/models"
)

func TestSettingsServiceSaveKeepsUnsetKeys(t *testing.T) {
	repo := &stubSettingsRepo{}
	service := NewSettingsService(repo)

	loaded, err := service.Load()
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if loaded != models.DefaultSettings() {
		t.Fatalf("expected default settings, got %#v", loaded)
	}

	goal := 1800
	saved, err := service.Save(models.SettingsUpdate{CalorieGoal: &goal})
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if saved.CalorieGoal != 1800 || saved.WeightUnit != models.WeightUnitKG {
		t.Fatalf("expected goal 1800 with unit kg, got %#v", saved)
	}
}

func TestSettingsServiceSaveRejectsInvalidValues(t *testing.T) {
	service := NewSettingsService(&stubSettingsRepo{})

	zero := 0
	if _, err := service.Save(models.SettingsUpdate{CalorieGoal: &zero}); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for zero goal, got %v", err)
	}
	stone := "st"
	if _, err := service.Save(models.SettingsUpdate{WeightUnit: &stone}); !errors.Is(err, ErrInvalidSettings) {
		t.Fatalf("expected ErrInvalidSettings for unknown unit, got %v", err)
	}
}

func TestSettingsServiceClearAllData(t *testing.T) {
	settings := &stubSettingsRepo{settings: models.Settings{CalorieGoal: 1500, WeightUnit: models.WeightUnitLB}}
	foods := &stubFoodRepo{}
	weights := &stubWeightRepo{}
	service := NewSettingsService(settings, foods, weights)

	if err := service.ClearAllData(); err != nil {
		t.Fatalf("ClearAllData() unexpected error: %v", err)
	}
	if !foods.cleared || !weights.cleared || !settings.cleared {
		t.Fatalf("expected every collection cleared, foods=%v weights=%v settings=%v", foods.cleared, weights.cleared, settings.cleared)
	}

	failing := NewSettingsService(&stubSettingsRepo{}, &stubFoodRepo{err: errStubStorage})
	if err := failing.ClearAllData(); !errors.Is(err, ErrClearDataFailed) {
		t.Fatalf("expected ErrClearDataFailed, got %v", err)
	}
}
