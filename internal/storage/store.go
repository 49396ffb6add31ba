// Package storage is the JSON persistence layer over a string-keyed backend.
//
// Every entity collection lives under one key as a JSON document. Store never
// hides a failure: read, decode and write problems are logged, counted and
// returned wrapped in ErrPersistenceFailure.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ErrPersistenceFailure = errors.New("persistence failure")

var storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "nibble_store_operations_total",
	Help: "Store operations by kind and result",
}, []string{"op", "result"})

// Backend is a synchronous string-keyed byte store.
type Backend interface {
	Get(key string) ([]byte, bool, error)
	Put(key string, value []byte) error
	Delete(key string) error
}

type Store struct {
	backend Backend
	logger  *slog.Logger
	writeMu sync.Mutex
}

func New(backend Backend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		backend: backend,
		logger:  logger.With("component", "store"),
	}
}

// Read decodes the value stored under key into dest. A missing key reports found=false.
func (store *Store) Read(key string, dest any) (bool, error) {
	raw, found, err := store.backend.Get(key)
	if err != nil {
		storeOperations.WithLabelValues("read", "error").Inc()
		store.logger.Error("read failed", "key", key, "error", err)
		return false, fmt.Errorf("%w: read %s: %v", ErrPersistenceFailure, key, err)
	}
	if !found || len(raw) == 0 {
		storeOperations.WithLabelValues("read", "absent").Inc()
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		storeOperations.WithLabelValues("read", "corrupt").Inc()
		store.logger.Error("decode failed", "key", key, "error", err)
		return false, fmt.Errorf("%w: decode %s: %v", ErrPersistenceFailure, key, err)
	}

	storeOperations.WithLabelValues("read", "ok").Inc()
	return true, nil
}

// Write encodes value as JSON and stores it under key. Nothing is rolled back on failure.
func (store *Store) Write(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		storeOperations.WithLabelValues("write", "error").Inc()
		store.logger.Error("encode failed", "key", key, "error", err)
		return fmt.Errorf("%w: encode %s: %v", ErrPersistenceFailure, key, err)
	}

	if err := store.backend.Put(key, raw); err != nil {
		storeOperations.WithLabelValues("write", "error").Inc()
		store.logger.Error("write failed", "key", key, "bytes", len(raw), "error", err)
		return fmt.Errorf("%w: write %s: %v", ErrPersistenceFailure, key, err)
	}

	storeOperations.WithLabelValues("write", "ok").Inc()
	return nil
}

func (store *Store) Remove(key string) error {
	if err := store.backend.Delete(key); err != nil {
		storeOperations.WithLabelValues("remove", "error").Inc()
		store.logger.Error("remove failed", "key", key, "error", err)
		return fmt.Errorf("%w: remove %s: %v", ErrPersistenceFailure, key, err)
	}
	storeOperations.WithLabelValues("remove", "ok").Inc()
	return nil
}

// Transact runs one read-modify-write cycle. Cycles never interleave within a Store.
func (store *Store) Transact(fn func() error) error {
	store.writeMu.Lock()
	defer store.writeMu.Unlock()
	return fn()
}
