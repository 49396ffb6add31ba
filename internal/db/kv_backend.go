package db

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type kvEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey"`
	Value     string    `gorm:"column:entry_value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (kvEntry) TableName() string {
	return "kv_entries"
}

// KVBackend stores each key as one row of the kv_entries table.
type KVBackend struct {
	database *gorm.DB
}

func NewKVBackend(database *gorm.DB) *KVBackend {
	return &KVBackend{database: database}
}

func OpenKVBackend(dbPath string, logger *slog.Logger) (*KVBackend, error) {
	database, err := OpenSQLite(dbPath, logger)
	if err != nil {
		return nil, err
	}
	return NewKVBackend(database), nil
}

func (backend *KVBackend) Get(key string) ([]byte, bool, error) {
	entry := kvEntry{}
	result := backend.database.
		Where("entry_key = ?", key).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, false, nil
	}
	return []byte(entry.Value), true, nil
}

func (backend *KVBackend) Put(key string, value []byte) error {
	entry := kvEntry{
		Key:       key,
		Value:     string(value),
		UpdatedAt: time.Now().UTC(),
	}
	return backend.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"entry_value", "updated_at"}),
	}).Create(&entry).Error
}

func (backend *KVBackend) Delete(key string) error {
	return backend.database.Where("entry_key = ?", key).Delete(&kvEntry{}).Error
}

func (backend *KVBackend) Close() error {
	sqlDB, err := backend.database.DB()
	if err != nil {
		return fmt.Errorf("resolve sql db: %w", err)
	}
	return sqlDB.Close()
}
