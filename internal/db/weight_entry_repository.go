package db

import (
	"fmt"
	"sort"
	"time"

	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/storage"
)

// WeightEntryRepository keeps at most one entry per date, sorted ascending by date.
type WeightEntryRepository struct {
	store *storage.Store
	now   func() time.Time
}

func NewWeightEntryRepository(store *storage.Store) *WeightEntryRepository {
	return &WeightEntryRepository{
		store: store,
		now:   time.Now,
	}
}

func (repo *WeightEntryRepository) List() ([]models.WeightEntry, error) {
	entries, err := readList[models.WeightEntry](repo.store, WeightEntriesKey)
	if err != nil {
		return nil, fmt.Errorf("list weight entries: %w", err)
	}
	return entries, nil
}

// Create saves entry, overwriting the weight of an existing entry on the same date.
// The overwritten entry keeps its id and createdAt.
func (repo *WeightEntryRepository) Create(entry models.WeightEntry) (models.WeightEntry, error) {
	var saved models.WeightEntry

	err := repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}

		index := indexOfWeightDate(entries, entry.Date)
		if index >= 0 {
			entries[index].Weight = entry.Weight
			saved = entries[index]
		} else {
			entry.ID = newRecordID()
			entry.CreatedAt = repo.now().UTC()
			entries = append(entries, entry)
			saved = entry
		}

		sortWeightEntries(entries)
		return repo.store.Write(WeightEntriesKey, entries)
	})
	if err != nil {
		return models.WeightEntry{}, err
	}
	return saved, nil
}

// Update merges update onto the entry with id. Moving an entry onto a date that is
// already taken replaces the other entry, so the one-per-date rule still holds.
func (repo *WeightEntryRepository) Update(id string, update models.WeightEntryUpdate) (models.WeightEntry, bool, error) {
	var updated models.WeightEntry
	found := false

	err := repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}

		target := -1
		for index := range entries {
			if entries[index].ID == id {
				target = index
				break
			}
		}
		if target < 0 {
			return nil
		}

		found = true
		updated = entries[target].Apply(update)

		result := make([]models.WeightEntry, 0, len(entries))
		for index, entry := range entries {
			if index == target {
				continue
			}
			if entry.Date == updated.Date {
				continue
			}
			result = append(result, entry)
		}
		result = append(result, updated)

		sortWeightEntries(result)
		return repo.store.Write(WeightEntriesKey, result)
	})
	if err != nil {
		return models.WeightEntry{}, false, err
	}
	return updated, found, nil
}

func (repo *WeightEntryRepository) Delete(id string) error {
	return repo.store.Transact(func() error {
		entries, err := repo.List()
		if err != nil {
			return err
		}
		filtered := make([]models.WeightEntry, 0, len(entries))
		for _, entry := range entries {
			if entry.ID != id {
				filtered = append(filtered, entry)
			}
		}
		return repo.store.Write(WeightEntriesKey, filtered)
	})
}

func (repo *WeightEntryRepository) FindByID(id string) (models.WeightEntry, bool, error) {
	entries, err := repo.List()
	if err != nil {
		return models.WeightEntry{}, false, err
	}
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true, nil
		}
	}
	return models.WeightEntry{}, false, nil
}

// Latest returns the entry with the greatest date.
func (repo *WeightEntryRepository) Latest() (models.WeightEntry, bool, error) {
	entries, err := repo.List()
	if err != nil {
		return models.WeightEntry{}, false, err
	}
	if len(entries) == 0 {
		return models.WeightEntry{}, false, nil
	}
	return entries[len(entries)-1], true, nil
}

// ReplaceAll stores entries as given after collapsing duplicate dates (last one wins)
// and sorting.
func (repo *WeightEntryRepository) ReplaceAll(entries []models.WeightEntry) error {
	byDate := make(map[string]int, len(entries))
	normalized := make([]models.WeightEntry, 0, len(entries))
	for _, entry := range entries {
		if index, ok := byDate[entry.Date]; ok {
			normalized[index] = entry
			continue
		}
		byDate[entry.Date] = len(normalized)
		normalized = append(normalized, entry)
	}
	sortWeightEntries(normalized)

	return repo.store.Transact(func() error {
		return repo.store.Write(WeightEntriesKey, normalized)
	})
}

func (repo *WeightEntryRepository) Clear() error {
	return repo.store.Transact(func() error {
		return repo.store.Remove(WeightEntriesKey)
	})
}

func indexOfWeightDate(entries []models.WeightEntry, date string) int {
	for index := range entries {
		if entries[index].Date == date {
			return index
		}
	}
	return -1
}

// ISO dates order lexicographically.
func sortWeightEntries(entries []models.WeightEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
