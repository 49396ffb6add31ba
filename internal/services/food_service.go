package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
	"github.com/terraincognita07/nibble/internal/models"
)

var (
	ErrInvalidFoodEntry      = errors.New("invalid food entry")
	ErrFoodEntryLoadFailed   = errors.New("load food entries failed")
	ErrFoodEntrySaveFailed   = errors.New("save food entry failed")
	ErrFoodEntryDeleteFailed = errors.New("delete food entry failed")
)

type FoodEntryInput struct {
	Name     string `json:"name" validate:"required,max=200"`
	Quantity string `json:"quantity" validate:"max=100"`
	Calories int    `json:"calories" validate:"gte=0,lte=100000"`
	Date     string `json:"date" validate:"required"`
}

// foodEntryUpdateRules mirrors FoodEntryInput for partial updates; nil fields are skipped.
type foodEntryUpdateRules struct {
	Name     *string `validate:"omitempty,min=1,max=200"`
	Quantity *string `validate:"omitempty,max=100"`
	Calories *int    `validate:"omitempty,gte=0,lte=100000"`
}

type FoodEntryRepository interface {
	List() ([]models.FoodEntry, error)
	Create(entry models.FoodEntry) (models.FoodEntry, error)
	Update(id string, update models.FoodEntryUpdate) (models.FoodEntry, bool, error)
	Delete(id string) error
	FindByID(id string) (models.FoodEntry, bool, error)
	ByDate(day time.Time) ([]models.FoodEntry, error)
	ByDateRange(start time.Time, end time.Time) ([]models.FoodEntry, error)
}

type FoodService struct {
	entries  FoodEntryRepository
	location *time.Location
}

func NewFoodService(entries FoodEntryRepository, location *time.Location) *FoodService {
	if location == nil {
		location = time.Local
	}
	return &FoodService{
		entries:  entries,
		location: location,
	}
}

func (service *FoodService) List() ([]models.FoodEntry, error) {
	entries, err := service.entries.List()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *FoodService) ListForDay(rawDate string) ([]models.FoodEntry, error) {
	day, err := dates.ParseISO(rawDate, service.location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFoodEntry, err)
	}
	entries, err := service.entries.ByDate(day)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *FoodService) ListForRange(rawFrom string, rawTo string) ([]models.FoodEntry, error) {
	from, err := dates.ParseISO(rawFrom, service.location)
	if err != nil {
		return nil, fmt.Errorf("%w: from: %v", ErrInvalidFoodEntry, err)
	}
	to, err := dates.ParseISO(rawTo, service.location)
	if err != nil {
		return nil, fmt.Errorf("%w: to: %v", ErrInvalidFoodEntry, err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end before start", ErrInvalidFoodEntry)
	}

	entries, err := service.entries.ByDateRange(from, to)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFoodEntryLoadFailed, err)
	}
	return entries, nil
}

func (service *FoodService) Find(id string) (models.FoodEntry, bool, error) {
	entry, found, err := service.entries.FindByID(id)
	if err != nil {
		return models.FoodEntry{}, false, fmt.Errorf("%w: %v", ErrFoodEntryLoadFailed, err)
	}
	return entry, found, nil
}

func (service *FoodService) Create(input FoodEntryInput) (models.FoodEntry, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Quantity = strings.TrimSpace(input.Quantity)
	if err := validate.Struct(input); err != nil {
		return models.FoodEntry{}, fmt.Errorf("%w: %s", ErrInvalidFoodEntry, validationMessage(err))
	}
	date, err := dates.NormalizeISO(input.Date)
	if err != nil {
		return models.FoodEntry{}, fmt.Errorf("%w: date: %v", ErrInvalidFoodEntry, err)
	}

	created, err := service.entries.Create(models.FoodEntry{
		Name:     input.Name,
		Quantity: input.Quantity,
		Calories: input.Calories,
		Date:     date,
	})
	if err != nil {
		return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrFoodEntrySaveFailed, err)
	}
	return created, nil
}

func (service *FoodService) Update(id string, update models.FoodEntryUpdate) (models.FoodEntry, bool, error) {
	update.Name = trimmedPointer(update.Name)
	update.Quantity = trimmedPointer(update.Quantity)
	rules := foodEntryUpdateRules{Name: update.Name, Quantity: update.Quantity, Calories: update.Calories}
	if err := validate.Struct(rules); err != nil {
		return models.FoodEntry{}, false, fmt.Errorf("%w: %s", ErrInvalidFoodEntry, validationMessage(err))
	}
	if update.Date != nil {
		date, err := dates.NormalizeISO(*update.Date)
		if err != nil {
			return models.FoodEntry{}, false, fmt.Errorf("%w: date: %v", ErrInvalidFoodEntry, err)
		}
		update.Date = &date
	}

	updated, found, err := service.entries.Update(id, update)
	if err != nil {
		return models.FoodEntry{}, false, fmt.Errorf("%w: %v", ErrFoodEntrySaveFailed, err)
	}
	return updated, found, nil
}

func (service *FoodService) Delete(id string) error {
	if err := service.entries.Delete(id); err != nil {
		return fmt.Errorf("%w: %v", ErrFoodEntryDeleteFailed, err)
	}
	return nil
}
