package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBadgerRequiresPath(t *testing.T) {
	_, err := OpenBadger(BadgerConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is required")
}

func TestBadgerBackendInMemoryRoundTrip(t *testing.T) {
	backend, err := OpenBadger(BadgerConfig{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	_, found, err := backend.Get("nibble.weight_entries")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Put("nibble.weight_entries", []byte(`[{"date":"2024-01-10","weight":70}]`)))

	value, found, err := backend.Get("nibble.weight_entries")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"date":"2024-01-10","weight":70}]`, string(value))

	require.NoError(t, backend.Delete("nibble.weight_entries"))
	_, found, err = backend.Get("nibble.weight_entries")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBadgerBackendPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	backend, err := OpenBadger(BadgerConfig{Path: dir, SyncWrites: true, Logger: discardLogger()})
	require.NoError(t, err)
	require.NoError(t, backend.Put("nibble.settings", []byte(`{"weightUnit":"lb"}`)))
	require.NoError(t, backend.Close())

	reopened, err := OpenBadger(BadgerConfig{Path: dir, Logger: discardLogger()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = reopened.Close() })

	value, found, err := reopened.Get("nibble.settings")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, `{"weightUnit":"lb"}`, string(value))
}
