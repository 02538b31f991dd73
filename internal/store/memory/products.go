package memory

import (
	"context"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

type ProductRepo struct {
	db *DB
}

func (r *ProductRepo) List(ctx context.Context) ([]models.Product, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	products := make([]models.Product, 0, len(r.db.products))
	for _, row := range r.db.products {
		products = append(products, cloneProduct(models.Product(row)))
	}
	return products, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int64) (*models.Product, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := indexOf(r.db.products, id)
	if i == -1 {
		return nil, database.ErrProductNotFound
	}
	product := cloneProduct(models.Product(r.db.products[i]))
	return &product, nil
}

func (r *ProductRepo) ListByShop(ctx context.Context, shopID int64) ([]models.Product, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	products := []models.Product{}
	for _, row := range r.db.products {
		if row.ShopID == shopID {
			products = append(products, cloneProduct(models.Product(row)))
		}
	}
	return products, nil
}

func (r *ProductRepo) Create(ctx context.Context, product models.Product) (*models.Product, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	product = cloneProduct(product)
	product.ID = assignID(r.db.products, &r.db.lastProductID)
	r.db.products = append(r.db.products, productRow(product))

	created := cloneProduct(product)
	return &created, nil
}

func (r *ProductRepo) Update(ctx context.Context, id int64, update models.ProductUpdate) (*models.Product, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.products, id)
	if i == -1 {
		return nil, database.ErrProductNotFound
	}

	product := models.Product(r.db.products[i])
	update.Apply(&product)
	r.db.products[i] = productRow(cloneProduct(product))

	updated := cloneProduct(product)
	return &updated, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.products, id)
	if i == -1 {
		return database.ErrProductNotFound
	}
	r.db.products = append(r.db.products[:i], r.db.products[i+1:]...)
	return nil
}
