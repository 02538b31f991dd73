package seller

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/safar/artisan-market/internal/catalog"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/shops"
	"github.com/safar/artisan-market/internal/store"
	"github.com/safar/artisan-market/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func order(id, shopID int64, status, total, payout string) models.Order {
	return models.Order{
		ID:           id,
		ShopID:       shopID,
		Status:       status,
		TotalAmount:  decimal.RequireFromString(total),
		SellerPayout: decimal.RequireFromString(payout),
	}
}

type orderSource struct{ orders []models.Order }

func (s orderSource) GetAll(context.Context) ([]models.Order, error) { return s.orders, nil }

func (s orderSource) GetByShopID(_ context.Context, shopID int64) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.ShopID == shopID {
			out = append(out, o)
		}
	}
	return out, nil
}

func TestComputeStats(t *testing.T) {
	orders := []models.Order{
		order(1, 1, models.OrderStatusNew, "56.00", "50.40"),
		order(2, 2, models.OrderStatusShipped, "38.50", "34.65"),
		order(3, 1, models.OrderStatusNew, "10", "9"),
		order(4, 1, models.OrderStatusDelivered, "1", "0.9"),
		order(5, 3, models.OrderStatusCancelled, "2", "1.8"),
		order(6, 3, models.OrderStatusNew, "3", "2.7"),
	}

	stats := ComputeStats(orders, 8)

	assert.Equal(t, 6, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.Equal(decimal.RequireFromString("110.50")))
	assert.True(t, stats.TotalPayout.Equal(decimal.RequireFromString("99.45")))
	assert.Equal(t, 8, stats.TotalProducts)
	assert.Equal(t, 3, stats.PendingOrders)
	require.Len(t, stats.RecentOrders, 5)
	assert.Equal(t, int64(1), stats.RecentOrders[0].ID)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, 0)
	assert.Zero(t, stats.TotalOrders)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.NotNil(t, stats.RecentOrders)
}

func TestDashboardScopesToShop(t *testing.T) {
	repos := memory.New(&store.Seed{Products: []models.Product{
		{ID: 1, ShopID: 1}, {ID: 2, ShopID: 1}, {ID: 3, ShopID: 2},
	}}, memory.Options{}).Repositories()

	dash := NewDashboard(orderSource{orders: []models.Order{
		order(1, 1, models.OrderStatusNew, "20", "18"),
		order(2, 2, models.OrderStatusNew, "30", "27"),
	}}, catalog.NewService(repos.Products))

	shopID := int64(1)
	stats, err := dash.Stats(context.Background(), &shopID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalOrders)
	assert.Equal(t, 2, stats.TotalProducts)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(20)))

	all, err := dash.Stats(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalOrders)
	assert.Equal(t, 3, all.TotalProducts)
}

func validRegistration() Registration {
	return Registration{
		BusinessName:      "Loom & Thread",
		BusinessEmail:     "hello@loom.example.com",
		BusinessPhone:     "555-0100",
		TaxID:             "12-3456789",
		BusinessDocuments: []Document{{Name: "license.pdf", Size: 1024}},
		IdentityDocuments: []Document{{Name: "passport.jpg", Size: 2048}},
	}
}

func newRegistrar() *Registrar {
	repos := memory.New(&store.Seed{Shops: []models.Shop{
		{ID: 1, Name: "Clay Corner", CustomURL: "clay-corner", IsActive: true},
	}}, memory.Options{}).Repositories()
	return NewRegistrar(shops.NewService(repos.Shops), validator.New())
}

func TestRegisterCreatesShop(t *testing.T) {
	shop, err := newRegistrar().Register(context.Background(), validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "Loom & Thread", shop.Name)
	assert.Equal(t, "loom-thread", shop.CustomURL)
	assert.True(t, shop.IsActive)
}

func TestRegisterRequiresFieldsAndDocuments(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Registration)
		field  string
	}{
		{"business name", func(r *Registration) { r.BusinessName = "" }, "BusinessName"},
		{"email", func(r *Registration) { r.BusinessEmail = "" }, "BusinessEmail"},
		{"phone", func(r *Registration) { r.BusinessPhone = "" }, "BusinessPhone"},
		{"tax id", func(r *Registration) { r.TaxID = "" }, "TaxID"},
		{"business documents", func(r *Registration) { r.BusinessDocuments = nil }, "BusinessDocuments"},
		{"identity documents", func(r *Registration) { r.IdentityDocuments = nil }, "IdentityDocuments"},
		{"document size", func(r *Registration) { r.IdentityDocuments[0].Size = MaxDocumentSize + 1 }, "Size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := validRegistration()
			tt.mutate(&reg)

			_, err := newRegistrar().Register(context.Background(), reg)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestRegisterDuplicateBusinessName(t *testing.T) {
	reg := validRegistration()
	reg.BusinessName = "Clay Corner"

	_, err := newRegistrar().Register(context.Background(), reg)
	assert.ErrorIs(t, err, database.ErrShopURLTaken)
}
