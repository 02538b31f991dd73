// Package seller serves the seller dashboard and seller registration.
package seller

import (
	"context"

	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
)

const recentOrdersLimit = 5

type OrderSource interface {
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByShopID(ctx context.Context, shopID int64) ([]models.Order, error)
}

type ProductSource interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByShopID(ctx context.Context, shopID int64) ([]models.Product, error)
}

type Stats struct {
	TotalOrders   int             `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalPayout   decimal.Decimal `json:"total_payout"`
	TotalProducts int             `json:"total_products"`
	PendingOrders int             `json:"pending_orders"`
	RecentOrders  []models.Order  `json:"recent_orders"`
}

// ComputeStats summarizes orders and counts products. Pending means status new;
// recent orders are the first five in store order.
func ComputeStats(orders []models.Order, productCount int) Stats {
	stats := Stats{
		TotalOrders:   len(orders),
		TotalRevenue:  decimal.Zero,
		TotalPayout:   decimal.Zero,
		TotalProducts: productCount,
	}
	for _, o := range orders {
		stats.TotalRevenue = stats.TotalRevenue.Add(o.TotalAmount)
		stats.TotalPayout = stats.TotalPayout.Add(o.SellerPayout)
		if o.Status == models.OrderStatusNew {
			stats.PendingOrders++
		}
	}

	n := min(len(orders), recentOrdersLimit)
	stats.RecentOrders = append([]models.Order{}, orders[:n]...)
	return stats
}

type Dashboard struct {
	orders   OrderSource
	products ProductSource
}

func NewDashboard(orders OrderSource, products ProductSource) *Dashboard {
	return &Dashboard{orders: orders, products: products}
}

// Stats covers the whole marketplace when shopID is nil, otherwise that shop only.
func (d *Dashboard) Stats(ctx context.Context, shopID *int64) (Stats, error) {
	var (
		orders   []models.Order
		products []models.Product
		err      error
	)

	if shopID == nil {
		orders, err = d.orders.GetAll(ctx)
	} else {
		orders, err = d.orders.GetByShopID(ctx, *shopID)
	}
	if err != nil {
		return Stats{}, err
	}

	if shopID == nil {
		products, err = d.products.GetAll(ctx)
	} else {
		products, err = d.products.GetByShopID(ctx, *shopID)
	}
	if err != nil {
		return Stats{}, err
	}

	return ComputeStats(orders, len(products)), nil
}
