package store

import (
	"context"

	"github.com/safar/artisan-market/internal/models"
)

// ProductRepository persists products. Implementations return database.ErrProductNotFound
// for unknown ids.
type ProductRepository interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id int64) (*models.Product, error)
	ListByShop(ctx context.Context, shopID int64) ([]models.Product, error)
	Create(ctx context.Context, product models.Product) (*models.Product, error)
	Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type OrderRepository interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	ListByShop(ctx context.Context, shopID int64) ([]models.Order, error)
	Create(ctx context.Context, order models.Order) (*models.Order, error)
	// Save replaces the stored order with the same id.
	Save(ctx context.Context, order models.Order) (*models.Order, error)
}

type ReviewRepository interface {
	List(ctx context.Context) ([]models.Review, error)
	Get(ctx context.Context, id int64) (*models.Review, error)
	ListByProduct(ctx context.Context, productID int64) ([]models.Review, error)
	Create(ctx context.Context, review models.Review) (*models.Review, error)
	SetApproved(ctx context.Context, id int64, approved bool) (*models.Review, error)
	Delete(ctx context.Context, id int64) error
}

type ShopRepository interface {
	List(ctx context.Context) ([]models.Shop, error)
	Get(ctx context.Context, id int64) (*models.Shop, error)
	GetByCustomURL(ctx context.Context, customURL string) (*models.Shop, error)
	Create(ctx context.Context, shop models.Shop) (*models.Shop, error)
	Save(ctx context.Context, shop models.Shop) (*models.Shop, error)
	Delete(ctx context.Context, id int64) error
}

// Repositories groups one backend's repositories.
type Repositories struct {
	Products ProductRepository
	Orders   OrderRepository
	Reviews  ReviewRepository
	Shops    ShopRepository
}
