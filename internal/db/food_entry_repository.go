package db

import (
	"fmt"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/storage"
)

type FoodEntryRepository struct {
	store    *storage.Store
	location *time.Location
	now      func() time.Time
}

func NewFoodEntryRepository(store *storage.Store, location *time.Location) *FoodEntryRepository {
	if location == nil {
		location = time.Local
	}
	return &FoodEntryRepository{
		store:    store,
		location: location,
		now:      time.Now,
	}
}

func (repo *FoodEntryRepository) List() ([]models.FoodEntry, error) {
	entries, err := readList[models.FoodEntry](repo.store, FoodEntriesKey)
	if err != nil {
		return nil, fmt.Errorf("list food entries: %w", err)
	}
	return entries, nil
}

func (repo *FoodEntryRepository) Create(entry models.FoodEntry) (models.FoodEntry, error) {
	entry.ID = newRecordID()
	entry.CreatedAt = repo.now().UTC()

	err := repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}
		entries = append(entries, entry)
		return repo.store.Write(FoodEntriesKey, entries)
	})
	if err != nil {
		return models.FoodEntry{}, err
	}
	return entry, nil
}

func (repo *FoodEntryRepository) Update(id string, update models.FoodEntryUpdate) (models.FoodEntry, bool, error) {
	var updated models.FoodEntry
	found := false

	err := repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}
		for index := range entries {
			if entries[index].ID != id {
				continue
			}
			entries[index] = entries[index].Apply(update)
			updated = entries[index]
			found = true
			break
		}
		if !found {
			return nil
		}
		return repo.store.Write(FoodEntriesKey, entries)
	})
	if err != nil {
		return models.FoodEntry{}, false, err
	}
	return updated, found, nil
}

func (repo *FoodEntryRepository) Delete(id string) error {
	return repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}
		filtered := make([]models.FoodEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.ID != id {
				filtered = append(filtered, entry)
			}
		}
		return repo.store.Write(FoodEntriesKey, filtered)
	})
}

func (repo *FoodEntryRepository) FindByID(id string) (models.FoodEntry, bool, error) {
	entries, err := repo.List()
	if err != nil {
		return models.FoodEntry{}, false, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.FoodEntry{}, false, nil
}

// ByDate returns the entries logged on day's local calendar date.
func (repo *FoodEntryRepository) ByDate(day time.Time) ([]models.FoodEntry, error) {
	entries, err := repo.List()
	if err != nil {
		return nil, err
	}

	matched := make([]models.FoodEntry, 0)
	for _, entry := range entries {
		entryDay, ok := repo.entryDay(entry)
		if ok && dates.SameDay(entryDay, day, repo.location) {
			matched = append(matched, entry)
		}
	}
	return matched, nil
}

// ByDateRange is inclusive: start is taken from 00:00:00.000 and end up to 23:59:59.999.
func (repo *FoodEntryRepository) ByDateRange(start time.Time, end time.Time) ([]models.FoodEntry, error) {
	entries, err := repo.List()
	if err != nil {
		return nil, err
	}

	rangeStart, _ := dates.DayBounds(start, repo.location)
	_, rangeEnd := dates.DayBounds(end, repo.location)

	matched := make([]models.FoodEntry, 0)
	for _, entry := range entries {
		entryDay, ok := repo.entryDay(entry)
		if !ok {
			continue
		}
		if entryDay.Before(rangeStart) || entryDay.After(rangeEnd) {
			continue
		}
		matched = append(matched, entry)
	}
	return matched, nil
}

func (repo *FoodEntryRepository) ReplaceAll(entries []models.FoodEntry) error {
	if entries == nil {
		entries = make([]models.FoodEntry, 0)
	}
	return repo.store.Transact(func() error {
		return repo.store.Write(FoodEntriesKey, entries)
	})
}

func (repo *FoodEntryRepository) Clear() error {
	return repo.store.Transact(func() error {
		return repo.store.Remove(FoodEntriesKey)
	})
}

func (repo *FoodEntryRepository) entryDay(entry models.FoodEntry) (time.Time, bool) {
	day, err := dates.ParseISO(entry.Date, repo.location)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
