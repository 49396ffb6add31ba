package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/nibble/internal/models"
)

func newExportFixture() (*ExportService, *stubFoodRepo, *stubWeightRepo, *stubRecipeRepo, *stubSettingsRepo) {
	foods := &stubFoodRepo{entries: []models.FoodEntry{
		{ID: "b", Name: "Toast", Calories: 120, Date: "2024-01-10", CreatedAt: time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)},
		{ID: "a", Name: "Egg", Quantity: "1 large", Calories: 70, Date: "2024-01-10", CreatedAt: time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)},
		{ID: "c", Name: "Soup", Calories: 300, Date: "2024-01-09"},
	}}
	weights := &stubWeightRepo{entries: []models.WeightEntry{{ID: "w", Date: "2024-01-10", Weight: 70}}}
	recipes := &stubRecipeRepo{recipes: []models.Recipe{{ID: "r", Name: "Soup"}}}
	settings := &stubSettingsRepo{settings: models.Settings{CalorieGoal: 1800}}

	service := NewExportService(foods, weights, recipes, settings, time.UTC)
	service.now = func() time.Time { return time.Date(2024, 1, 11, 12, 0, 0, 0, time.UTC) }
	return service, foods, weights, recipes, settings
}

func TestExportServiceBuildBackup(t *testing.T) {
	service, _, _, _, _ := newExportFixture()

	backup, err := service.BuildBackup()
	if err != nil {
		t.Fatalf("BuildBackup() unexpected error: %v", err)
	}
	if backup.Version != BackupVersion {
		t.Fatalf("expected version %d, got %d", BackupVersion, backup.Version)
	}
	if len(backup.FoodEntries) != 3 || len(backup.WeightEntries) != 1 || len(backup.Recipes) != 1 {
		t.Fatalf("unexpected backup contents %#v", backup)
	}
	if backup.Settings.CalorieGoal != 1800 || backup.Settings.WeightUnit != models.WeightUnitKG {
		t.Fatalf("unexpected backup settings %#v", backup.Settings)
	}
}

func TestExportServiceBuildCSVRows(t *testing.T) {
	service, _, _, _, _ := newExportFixture()

	rows, err := service.BuildCSVRows("", "")
	if err != nil {
		t.Fatalf("BuildCSVRows() unexpected error: %v", err)
	}
	got := make([][]string, 0, len(rows))
	for _, row := range rows {
		got = append(got, row.Columns())
	}
	want := [][]string{
		{"2024-01-09", "Soup", "", "300"},
		{"2024-01-10", "Egg", "1 large", "70"},
		{"2024-01-10", "Toast", "", "120"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected rows:\n got %#v\nwant %#v", got, want)
	}

	ranged, err := service.BuildCSVRows("2024-01-10", "")
	if err != nil {
		t.Fatalf("BuildCSVRows(range) unexpected error: %v", err)
	}
	if len(ranged) != 2 {
		t.Fatalf("expected 2 rows from 2024-01-10 on, got %d", len(ranged))
	}

	if _, err := service.BuildCSVRows("2024-01-10", "2024-01-01"); !errors.Is(err, ErrExportRangeInvalid) {
		t.Fatalf("expected ErrExportRangeInvalid, got %v", err)
	}
}

func TestExportServiceImportBackupReplacesCollections(t *testing.T) {
	service, foods, weights, recipes, settings := newExportFixture()

	backup := Backup{
		Version:       BackupVersion,
		FoodEntries:   []models.FoodEntry{{ID: "x", Name: "Apple", Calories: 95, Date: " 2024-02-01 "}},
		WeightEntries: []models.WeightEntry{{ID: "y", Date: "2024-02-01", Weight: 68.2}},
		Recipes:       []models.Recipe{},
		Settings:      models.Settings{WeightUnit: models.WeightUnitLB},
	}

	summary, err := service.ImportBackup(backup)
	if err != nil {
		t.Fatalf("ImportBackup() unexpected error: %v", err)
	}
	if summary != (ImportSummary{FoodEntries: 1, WeightEntries: 1, Recipes: 0}) {
		t.Fatalf("unexpected import summary %#v", summary)
	}
	if len(foods.replaced) != 1 || foods.replaced[0].Date != "2024-02-01" {
		t.Fatalf("expected normalized food entries to be stored, got %#v", foods.replaced)
	}
	if len(weights.replaced) != 1 || recipes.replaced == nil {
		t.Fatalf("expected weights and recipes replaced, got %#v / %#v", weights.replaced, recipes.replaced)
	}
	if settings.replaced == nil || settings.replaced.CalorieGoal != models.DefaultCalorieGoal || settings.replaced.WeightUnit != models.WeightUnitLB {
		t.Fatalf("expected settings with defaults filled, got %#v", settings.replaced)
	}
}

func TestExportServiceImportRejectsInvalidBackupWithoutWriting(t *testing.T) {
	tests := []struct {
		name   string
		backup Backup
	}{
		{name: "wrong version", backup: Backup{Version: 2}},
		{name: "food without name", backup: Backup{Version: 1, FoodEntries: []models.FoodEntry{{ID: "x", Date: "2024-01-01"}}}},
		{name: "food with bad date", backup: Backup{Version: 1, FoodEntries: []models.FoodEntry{{ID: "x", Name: "Egg", Date: "Jan 1"}}}},
		{name: "zero weight", backup: Backup{Version: 1, WeightEntries: []models.WeightEntry{{ID: "w", Date: "2024-01-01"}}}},
		{name: "recipe image url", backup: Backup{Version: 1, Recipes: []models.Recipe{{ID: "r", Name: "Soup", Image: "http://x"}}}},
		{name: "unknown unit", backup: Backup{Version: 1, Settings: models.Settings{WeightUnit: "stone"}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			service, foods, _, _, _ := newExportFixture()
			_, err := service.ImportBackup(test.backup)
			if !errors.Is(err, ErrInvalidBackup) {
				t.Fatalf("expected ErrInvalidBackup, got %v", err)
			}
			if foods.replaced != nil {
				t.Fatal("expected nothing written for an invalid backup")
			}
		})
	}
}

func TestExportServiceImportWrapsStorageFailures(t *testing.T) {
	service, foods, _, _, _ := newExportFixture()
	foods.err = errStubStorage

	if _, err := service.ImportBackup(Backup{Version: BackupVersion}); !errors.Is(err, ErrImportFailed) {
		t.Fatalf("expected ErrImportFailed, got %v", err)
	}
}
