package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
)

type Service struct {
	products store.ProductRepository
	now      func() time.Time
}

func NewService(products store.ProductRepository) *Service {
	return &Service{products: products, now: time.Now}
}

func (s *Service) GetAll(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (s *Service) GetByShopID(ctx context.Context, shopID int64) ([]models.Product, error) {
	products, err := s.products.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list products for shop %d: %w", shopID, err)
	}
	return products, nil
}

func (s *Service) Search(ctx context.Context, f Filter) ([]models.Product, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return Search(products, f), nil
}

// Featured returns the first n products in store order.
func (s *Service) Featured(ctx context.Context, n int) ([]models.Product, error) {
	products, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if n >= 0 && len(products) > n {
		products = products[:n]
	}
	return products, nil
}

// Create stores a new product with zeroed rating and counters, stamped now.
func (s *Service) Create(ctx context.Context, p models.Product) (*models.Product, error) {
	p.ID = 0
	p.Rating = 0
	p.ReviewCount = 0
	p.SalesCount = 0
	p.CreatedAt = s.now()
	if p.Images == nil {
		p.Images = []string{}
	}

	product, err := s.products.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *Service) Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error) {
	product, err := s.products.Update(ctx, id, update)
	if err != nil {
		return nil, fmt.Errorf("update product %d: %w", id, err)
	}
	return product, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.products.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	return nil
}
