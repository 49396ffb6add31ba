package models

import "time"

type FoodEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  string    `json:"quantity,omitempty"`
	Calories  int       `json:"calories"`
	Date      string    `json:"date"`
	CreatedAt time.Time `json:"createdAt"`
}

// FoodEntryUpdate carries the fields to change; nil fields are left as they are.
type FoodEntryUpdate struct {
	Name     *string `json:"name"`
	Quantity *string `json:"quantity"`
	Calories *int    `json:"calories"`
	Date     *string `json:"date"`
}

func (entry FoodEntry) Apply(update FoodEntryUpdate) FoodEntry {
	if update.Name != nil {
		entry.Name = *update.Name
	}
	if update.Quantity != nil {
		entry.Quantity = *update.Quantity
	}
	if update.Calories != nil {
		entry.Calories = *update.Calories
	}
	if update.Date != nil {
		entry.Date = *update.Date
	}
	return entry
}
