package db

import (
	"fmt"
	"time"

	"github.com/terraincognita07/nibble/internal/models"
	"github.com/terraincognita07/nibble/internal/storage"
)

type SessionRepository struct {
	store *storage.Store
	now   func() time.Time
}

func NewSessionRepository(store *storage.Store) *SessionRepository {
	return &SessionRepository{
		store: store,
		now:   time.Now,
	}
}

func (repo *SessionRepository) Load() (models.SessionRecord, bool, error) {
	var record models.SessionRecord
	found, err := repo.store.Read(SessionKey, &record)
	if err != nil {
		return models.SessionRecord{}, false, fmt.Errorf("load session: %w", err)
	}
	return record, found, nil
}

// Update loads the record, applies mutate and writes the result while holding the store lock.
// An error from mutate aborts the update and is returned unchanged.
func (repo *SessionRepository) Update(mutate func(record *models.SessionRecord) error) (models.SessionRecord, error) {
	var updated models.SessionRecord
	err := repo.store.Transact(func() error {
		record, _, err := repo.Load()
		if err != nil {
			return err
		}
		if err := mutate(&record); err != nil {
			return err
		}
		record.UpdatedAt = repo.now().UTC()
		if err := repo.store.Write(SessionKey, record); err != nil {
			return fmt.Errorf("save session: %w", err)
		}
		updated = record
		return nil
	})
	if err != nil {
		return models.SessionRecord{}, err
	}
	return updated, nil
}

func (repo *SessionRepository) Clear() error {
	return repo.store.Transact(func() error {
		return repo.store.Remove(SessionKey)
	})
}
