package store_test

import (
	"testing"
	"testing/fstest"

	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
	"github.com/safar/artisan-market/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedSeed(t *testing.T) {
	s, err := store.LoadSeed(seed.Files)
	require.NoError(t, err)

	assert.NotEmpty(t, s.Products)
	assert.NotEmpty(t, s.Orders)
	assert.NotEmpty(t, s.Reviews)
	assert.NotEmpty(t, s.Shops)

	for _, o := range s.Orders {
		assert.True(t, o.PlatformFee.Add(o.SellerPayout).Equal(o.TotalAmount), "order %d fee split", o.ID)
		if o.Status == models.OrderStatusNew {
			assert.Nil(t, o.ShippedAt, "order %d", o.ID)
		}
	}
}

func TestLoadSeedMissingFilesAreEmpty(t *testing.T) {
	fsys := fstest.MapFS{
		"shops.json": {Data: []byte(`[{"id": 1, "name": "Only", "custom_url": "only", "is_active": true}]`)},
	}

	s, err := store.LoadSeed(fsys)
	require.NoError(t, err)
	assert.Len(t, s.Shops, 1)
	assert.Empty(t, s.Products)
}

func TestLoadSeedRejectsMalformedJSON(t *testing.T) {
	fsys := fstest.MapFS{
		"products.json": {Data: []byte(`{"not": "an array"}`)},
	}

	_, err := store.LoadSeed(fsys)
	assert.Error(t, err)
}
