package services

import (
	"errors"
	"fmt"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
)

var (
	ErrInvalidWeightEntry      = errors.New("invalid weight entry")
	ErrWeightEntryLoadFailed   = errors.New("load weight entries failed")
	ErrWeightEntrySaveFailed   = errors.New("save weight entry failed")
	ErrWeightEntryDeleteFailed = errors.New("delete weight entry failed")
)

const maxWeight = 1000

type WeightEntryInput struct {
	Date   string  `json:"date" validate:"required"`
	Weight float64 `json:"weight" validate:"gt=0,lte=1000"`
}

type WeightEntryRepository interface {
	List() ([]models.WeightEntry, error)
	Create(entry models.WeightEntry) (models.WeightEntry, error)
	Update(id string, update models.WeightEntryUpdate) (models.WeightEntry, bool, error)
	Delete(id string) error
	FindByID(id string) (models.WeightEntry, bool, error)
	Latest() (models.WeightEntry, bool, error)
}

type WeightService struct {
	entries WeightEntryRepository
}

func NewWeightService(entries WeightEntryRepository) *WeightService {
	return &WeightService{entries: entries}
}

func (service *WeightService) List() ([]models.WeightEntry, error) {
	entries, err := service.entries.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeightEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *WeightService) Latest() (models.WeightEntry, bool, error) {
	entry, found, err := service.entries.Latest()
	if err != nil {
		return models.WeightEntry{}, false, fmt.Errorf("%w: %v", ErrWeightEntryLoadFailed, err)
	}
	return entry, found, nil
}

func (service *WeightService) Find(id string) (models.WeightEntry, bool, error) {
	entry, found, err := service.entries.FindByID(id)
	if err != nil {
		return models.WeightEntry{}, false, fmt.Errorf("%w: %v", ErrWeightEntryLoadFailed, err)
	}
	return entry, found, nil
}

// Save records a weight for a date. A second save for the same date overwrites the weight.
func (service *WeightService) Save(input WeightEntryInput) (models.WeightEntry, error) {
	if err := validate.Struct(input); err != nil {
		return models.WeightEntry{}, fmt.Errorf("%w: %s", ErrInvalidWeightEntry, validationMessage(err))
	}
	date, err := dates.NormalizeISO(input.Date)
	if err != nil {
		return models.WeightEntry{}, fmt.Errorf("%w: date: %v", ErrInvalidWeightEntry, err)
	}

	saved, err := service.entries.Create(models.WeightEntry{Date: date, Weight: input.Weight})
	if err != nil {
		return models.WeightEntry{}, fmt.Errorf("%w: %v", ErrWeightEntrySaveFailed, err)
	}
	return saved, nil
}

func (service *WeightService) Update(id string, update models.WeightEntryUpdate) (models.WeightEntry, bool, error) {
	if update.Weight != nil && (*update.Weight <= 0 || *update.Weight > maxWeight) {
		return models.WeightEntry{}, false, fmt.Errorf("%w: weight: out of range", ErrInvalidWeightEntry)
	}
	if update.Date != nil {
		date, err := dates.NormalizeISO(*update.Date)
		if err != nil {
			return models.WeightEntry{}, false, fmt.Errorf("%w: date: %v", ErrInvalidWeightEntry, err)
		}
		update.Date = &date
	}

	updated, found, err := service.entries.Update(id, update)
	if err != nil {
		return models.WeightEntry{}, false, fmt.Errorf("%w: %v", ErrWeightEntrySaveFailed, err)
	}
	return updated, found, nil
}

func (service *WeightService) Delete(id string) error {
	if err := service.entries.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrWeightEntryDeleteFailed, err)
	}
	return nil
}
