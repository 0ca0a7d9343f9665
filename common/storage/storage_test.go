package storage

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "don_abc", "wlt_77"))

	value, err := store.Get(ctx, "don_abc")
	require.NoError(t, err)
	assert.Equal(t, "wlt_77", value)
}

func TestMemoryStoreNotFound(t *testing.T) {
	store := NewMemoryStore()

	_, err := store.Get(context.Background(), "never-stored")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitStorageDefaultsToMemory(t *testing.T) {
	viper.Set("storage.backend", "")
	t.Cleanup(func() { viper.Set("storage.backend", "memory") })

	store, err := InitStorage()
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
}

func TestInitStorageUnknownBackend(t *testing.T) {
	viper.Set("storage.backend", "tape")
	t.Cleanup(func() { viper.Set("storage.backend", "memory") })

	_, err := InitStorage()
	assert.Error(t, err)
}
