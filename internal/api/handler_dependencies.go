package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/nibble/internal/db"
	"github.com/terraincognita07/nibble/internal/services"
)

type Services struct {
	Foods     *services.FoodService
	Weights   *services.WeightService
	Recipes   *services.RecipeService
	Settings  *services.SettingsService
	Analytics *services.AnalyticsService
	Auth      *services.AuthService
	Export    *services.ExportService
}

// NewServices wires every service over one set of repositories.
func NewServices(repositories *db.Repositories, location *time.Location) Services {
	return Services{
		Foods:   services.NewFoodService(repositories.FoodEntries, location),
		Weights: services.NewWeightService(repositories.WeightEntries),
		Recipes: services.NewRecipeService(repositories.Recipes),
		Settings: services.NewSettingsService(
			repositories.Settings,
			repositories.FoodEntries,
			repositories.WeightEntries,
			repositories.Recipes,
		),
		Analytics: services.NewAnalyticsService(
			repositories.FoodEntries,
			repositories.WeightEntries,
			repositories.Settings,
			location,
		),
		Auth: services.NewAuthService(repositories.Session),
		Export: services.NewExportService(
			repositories.FoodEntries,
			repositories.WeightEntries,
			repositories.Recipes,
			repositories.Settings,
			location,
		),
	}
}

func (deps Services) validate() error {
	if deps.Foods == nil || deps.Weights == nil || deps.Recipes == nil || deps.Settings == nil ||
		deps.Analytics == nil || deps.Auth == nil || deps.Export == nil {
		return errors.New("all services are required")
	}
	return nil
}
