package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/nibble/internal/models"
)

func TestWeightServiceSaveValidatesInput(t *testing.T) {
	service := NewWeightService(&stubWeightRepo{})

	tests := []struct {
		name  string
		input WeightEntryInput
	}{
		{name: "zero weight", input: WeightEntryInput{Date: "2024-01-10", Weight: 0}},
		{name: "negative weight", input: WeightEntryInput{Date: "2024-01-10", Weight: -70}},
		{name: "implausible weight", input: WeightEntryInput{Date: "2024-01-10", Weight: 5000}},
		{name: "missing date", input: WeightEntryInput{Weight: 70}},
		{name: "malformed date", input: WeightEntryInput{Date: "2024-13-01", Weight: 70}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := service.Save(test.input); !errors.Is(err, ErrInvalidWeightEntry) {
				t.Fatalf("expected ErrInvalidWeightEntry, got %v", err)
			}
		})
	}
}

func TestWeightServiceSaveAndLatest(t *testing.T) {
	repo := &stubWeightRepo{}
	service := NewWeightService(repo)

	saved, err := service.Save(WeightEntryInput{Date: "2024-01-10", Weight: 69.5})
	if err != nil {
		t.Fatalf("Save() unexpected error: %v", err)
	}
	if saved.ID == "" || saved.Weight != 69.5 {
		t.Fatalf("unexpected saved entry %#v", saved)
	}

	latest, found, err := service.Latest()
	if err != nil {
		t.Fatalf("Latest() unexpected error: %v", err)
	}
	if !found || latest.Date != "2024-01-10" {
		t.Fatalf("unexpected latest found=%v entry=%#v", found, latest)
	}
}

func TestWeightServiceUpdateRejectsBadWeight(t *testing.T) {
	repo := &stubWeightRepo{entries: []models.WeightEntry{{ID: "w", Date: "2024-01-10", Weight: 70}}}
	service := NewWeightService(repo)

	zero := 0.0
	if _, _, err := service.Update("w", models.WeightEntryUpdate{Weight: &zero}); !errors.Is(err, ErrInvalidWeightEntry) {
		t.Fatalf("expected ErrInvalidWeightEntry, got %v", err)
	}
}

func TestWeightServiceWrapsStorageFailures(t *testing.T) {
	service := NewWeightService(&stubWeightRepo{err: errStubStorage})

	if _, err := service.Save(WeightEntryInput{Date: "2024-01-10", Weight: 70}); !errors.Is(err, ErrWeightEntrySaveFailed) {
		t.Fatalf("expected ErrWeightEntrySaveFailed, got %v", err)
	}
	if _, _, err := service.Latest(); !errors.Is(err, ErrWeightEntryLoadFailed) {
		t.Fatalf("expected ErrWeightEntryLoadFailed, got %v", err)
	}
}
