package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Set(ctx, "artisan-cart", "[]"))
	value, err := store.Get(ctx, "artisan-cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", value)

	require.NoError(t, store.Delete(ctx, "artisan-cart"))
	_, err = store.Get(ctx, "artisan-cart")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// deleting an absent key is not an error
	assert.NoError(t, store.Delete(ctx, "artisan-cart"))
}

func TestWithPrefixIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()

	alice := WithPrefix(shared, SessionPrefix("alice"))
	bob := WithPrefix(shared, SessionPrefix("bob"))

	require.NoError(t, alice.Set(ctx, "userRole", "seller"))

	_, err := bob.Get(ctx, "userRole")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	raw, err := shared.Get(ctx, "session:alice:userRole")
	require.NoError(t, err)
	assert.Equal(t, "seller", raw)
}

func TestMemoryStoreHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, NewMemoryStore().Set(ctx, "k", "v"), context.Canceled)
}
