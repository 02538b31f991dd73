package memory

import (
	"context"
	"testing"
	"time"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSeed() *store.Seed {
	return &store.Seed{
		Products: []models.Product{
			{ID: 1, Title: "Mug", Price: decimal.NewFromInt(18), ShopID: 1, Images: []string{"a.jpg"}},
			{ID: 4, Title: "Print", Price: decimal.NewFromInt(40), ShopID: 2},
		},
		Orders: []models.Order{
			{ID: 7, CustomerID: 1, ShopID: 1, Status: models.OrderStatusNew},
			{ID: 3, CustomerID: 2, ShopID: 2, Status: models.OrderStatusShipped},
		},
		Reviews: []models.Review{
			{ID: 1, ProductID: 1, Rating: 5, IsApproved: true},
			{ID: 2, ProductID: 1, Rating: 2},
		},
		Shops: []models.Shop{
			{ID: 1, Name: "Clay Corner", CustomURL: "clay-corner", IsActive: true},
		},
	}
}

func TestCreateAssignsMaxPlusOne(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	product, err := repos.Products.Create(ctx, models.Product{Title: "Scarf"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), product.ID)

	order, err := repos.Orders.Create(ctx, models.Order{CustomerID: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(8), order.ID)
}

func TestCreateOnEmptyCollectionStartsAtOne(t *testing.T) {
	repos := New(nil, Options{}).Repositories()

	shop, err := repos.Shops.Create(context.Background(), models.Shop{Name: "First", CustomURL: "first"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), shop.ID)
}

func TestDeletedIDsAreNotReused(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	require.NoError(t, repos.Products.Delete(ctx, 4))

	product, err := repos.Products.Create(ctx, models.Product{Title: "Vase"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), product.ID)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	_, err := repos.Products.Get(ctx, 99)
	assert.ErrorIs(t, err, database.ErrProductNotFound)

	_, err = repos.Orders.Get(ctx, 99)
	assert.ErrorIs(t, err, database.ErrOrderNotFound)

	_, err = repos.Reviews.SetApproved(ctx, 99, true)
	assert.ErrorIs(t, err, database.ErrReviewNotFound)

	_, err = repos.Shops.GetByCustomURL(ctx, "nope")
	assert.ErrorIs(t, err, database.ErrShopNotFound)

	assert.ErrorIs(t, repos.Products.Delete(ctx, 99), database.ErrProductNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	product, err := repos.Products.Get(ctx, 1)
	require.NoError(t, err)
	product.Images[0] = "mutated.jpg"
	product.Title = "Mutated"

	again, err := repos.Products.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Mug", again.Title)
	assert.Equal(t, []string{"a.jpg"}, again.Images)
}

func TestProductUpdateMergesFields(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	price := decimal.RequireFromString("21.50")
	updated, err := repos.Products.Update(ctx, 1, models.ProductUpdate{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Mug", updated.Title)
	assert.True(t, updated.Price.Equal(price))
}

func TestOrderFilters(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	byCustomer, err := repos.Orders.ListByCustomer(ctx, 2)
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, int64(3), byCustomer[0].ID)

	byShop, err := repos.Orders.ListByShop(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byShop, 1)
	assert.Equal(t, int64(7), byShop[0].ID)

	none, err := repos.Orders.ListByShop(ctx, 42)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestShopCustomURLIsUnique(t *testing.T) {
	ctx := context.Background()
	repos := New(testSeed(), Options{}).Repositories()

	_, err := repos.Shops.Create(ctx, models.Shop{Name: "Other", CustomURL: "clay-corner"})
	assert.ErrorIs(t, err, database.ErrShopURLTaken)

	second, err := repos.Shops.Create(ctx, models.Shop{Name: "Other", CustomURL: "other"})
	require.NoError(t, err)

	second.CustomURL = "clay-corner"
	_, err = repos.Shops.Save(ctx, *second)
	assert.ErrorIs(t, err, database.ErrShopURLTaken)
}

func TestLatencyHonorsContext(t *testing.T) {
	repos := New(testSeed(), Options{Latency: time.Second}).Repositories()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := repos.Products.List(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
