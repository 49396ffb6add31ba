package models

import "time"

type WeightEntry struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Weight    float64   `json:"weight"`
	CreatedAt time.Time `json:"createdAt"`
}

type WeightEntryUpdate struct {
	Date   *string  `json:"date"`
	Weight *float64 `json:"weight"`
}

func (entry WeightEntry) Apply(update WeightEntryUpdate) WeightEntry {
	if update.Date != nil {
		entry.Date = *update.Date
	}
	if update.Weight != nil {
		entry.Weight = *update.Weight
	}
	return entry
}
