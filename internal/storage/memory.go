package storage

import "sync"

// MemoryBackend keeps values in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string][]byte)}
}

func (backend *MemoryBackend) Get(key string) ([]byte, bool, error) {
	backend.mu.RLock()
	defer backend.mu.RUnlock()

	value, ok := backend.values[key]
	if !ok {
		return nil, false, nil
	}
	copied := make([]byte, len(value))
	copy(copied, value)
	return copied, true, nil
}

func (backend *MemoryBackend) Put(key string, value []byte) error {
	copied := make([]byte, len(value))
	copy(copied, value)

	backend.mu.Lock()
	defer backend.mu.Unlock()
	backend.values[key] = copied
	return nil
}

func (backend *MemoryBackend) Delete(key string) error {
	backend.mu.Lock()
	defer backend.mu.Unlock()
	delete(backend.values, key)
	return nil
}
