package models

const (
	WeightUnitKG = "kg"
	WeightUnitLB = "lb"

	DefaultCalorieGoal = 2000
	DefaultWeightUnit  = WeightUnitKG
)

type Settings struct {
	CalorieGoal int    `json:"calorieGoal"`
	WeightUnit  string `json:"weightUnit"`
}

type SettingsUpdate struct {
	CalorieGoal *int    `json:"calorieGoal"`
	WeightUnit  *string `json:"weightUnit"`
}

func DefaultSettings() Settings {
	return Settings{
		CalorieGoal: DefaultCalorieGoal,
		WeightUnit:  DefaultWeightUnit,
	}
}

// Apply merges update onto settings. Zero values in settings fall back to defaults first,
// so a stored record missing a key never regresses to absent.
func (settings Settings) Apply(update SettingsUpdate) Settings {
	merged := settings.WithDefaults()
	if update.CalorieGoal != nil {
		merged.CalorieGoal = *update.CalorieGoal
	}
	if update.WeightUnit != nil {
		merged.WeightUnit = *update.WeightUnit
	}
	return merged
}

func (settings Settings) WithDefaults() Settings {
	defaults := DefaultSettings()
	if settings.CalorieGoal == 0 {
		settings.CalorieGoal = defaults.CalorieGoal
	}
	if settings.WeightUnit == "" {
		settings.WeightUnit = defaults.WeightUnit
	}
	return settings
}
