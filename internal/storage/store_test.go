package storage

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

type failingBackend struct {
	*MemoryBackend
	getErr    error
	putErr    error
	deleteErr error
}

func (backend *failingBackend) Get(key string) ([]byte, bool, error) {
	if backend.getErr != nil {
		return nil, false, backend.getErr
	}
	return backend.MemoryBackend.Get(key)
}

func (backend *failingBackend) Put(key string, value []byte) error {
	if backend.putErr != nil {
		return backend.putErr
	}
	return backend.MemoryBackend.Put(key, value)
}

func (backend *failingBackend) Delete(key string) error {
	if backend.deleteErr != nil {
		return backend.deleteErr
	}
	return backend.MemoryBackend.Delete(key)
}

func newTestStore(backend Backend) *Store {
	return New(backend, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestStoreReadMissingKey(t *testing.T) {
	store := newTestStore(NewMemoryBackend())

	var value []sample
	found, err := store.Read("missing", &value)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if found {
		t.Fatal("expected missing key to report found=false")
	}
	if value != nil {
		t.Fatalf("expected destination untouched, got %#v", value)
	}
}

func TestStoreWriteThenRead(t *testing.T) {
	store := newTestStore(NewMemoryBackend())

	input := []sample{{Name: "egg", Count: 2}, {Name: "toast", Count: 1}}
	if err := store.Write("samples", input); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}

	var output []sample
	found, err := store.Read("samples", &output)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if !found {
		t.Fatal("expected stored key to be found")
	}
	if len(output) != 2 || output[0] != input[0] || output[1] != input[1] {
		t.Fatalf("unexpected round trip result %#v", output)
	}
}

func TestStoreReadCorruptValue(t *testing.T) {
	backend := NewMemoryBackend()
	if err := backend.Put("samples", []byte("{not json")); err != nil {
		t.Fatalf("seed corrupt value: %v", err)
	}
	store := newTestStore(backend)

	var output []sample
	found, err := store.Read("samples", &output)
	if !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure, got %v", err)
	}
	if found {
		t.Fatal("expected corrupt value to report found=false")
	}
}

func TestStoreBackendFailures(t *testing.T) {
	backendErr := errors.New("quota exceeded")
	backend := &failingBackend{
		MemoryBackend: NewMemoryBackend(),
		getErr:        backendErr,
		putErr:        backendErr,
		deleteErr:     backendErr,
	}
	store := newTestStore(backend)

	var output []sample
	if _, err := store.Read("samples", &output); !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("Read: expected ErrPersistenceFailure, got %v", err)
	}
	if err := store.Write("samples", []sample{{Name: "egg"}}); !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("Write: expected ErrPersistenceFailure, got %v", err)
	}
	if err := store.Remove("samples"); !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("Remove: expected ErrPersistenceFailure, got %v", err)
	}
}

func TestStoreWriteUnencodableValue(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	if err := store.Write("bad", map[string]any{"fn": func() {}}); !errors.Is(err, ErrPersistenceFailure) {
		t.Fatalf("expected ErrPersistenceFailure for unencodable value, got %v", err)
	}
}

func TestStoreRemove(t *testing.T) {
	store := newTestStore(NewMemoryBackend())
	if err := store.Write("samples", []sample{{Name: "egg"}}); err != nil {
		t.Fatalf("Write returned error: %v", err)
	}
	if err := store.Remove("samples"); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}

	var output []sample
	found, err := store.Read("samples", &output)
	if err != nil || found {
		t.Fatalf("expected removed key to be absent, found=%v err=%v", found, err)
	}
}

func TestMemoryBackendCopiesValues(t *testing.T) {
	backend := NewMemoryBackend()
	value := []byte("abc")
	if err := backend.Put("k", value); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}
	value[0] = 'z'

	stored, found, err := backend.Get("k")
	if err != nil || !found {
		t.Fatalf("Get failed: found=%v err=%v", found, err)
	}
	if string(stored) != "abc" {
		t.Fatalf("expected stored copy to be isolated, got %q", stored)
	}
}
