package memory

import (
	"context"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

type ShopRepo struct {
	db *DB
}

func (r *ShopRepo) List(ctx context.Context) ([]models.Shop, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	shops := make([]models.Shop, 0, len(r.db.shops))
	for _, row := range r.db.shops {
		shops = append(shops, models.Shop(row))
	}
	return shops, nil
}

func (r *ShopRepo) Get(ctx context.Context, id int64) (*models.Shop, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := indexOf(r.db.shops, id)
	if i == -1 {
		return nil, database.ErrShopNotFound
	}
	shop := models.Shop(r.db.shops[i])
	return &shop, nil
}

func (r *ShopRepo) GetByCustomURL(ctx context.Context, customURL string) (*models.Shop, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, row := range r.db.shops {
		if row.CustomURL == customURL {
			shop := models.Shop(row)
			return &shop, nil
		}
	}
	return nil, database.ErrShopNotFound
}

func (r *ShopRepo) Create(ctx context.Context, shop models.Shop) (*models.Shop, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if r.urlTaken(shop.CustomURL, 0) {
		return nil, database.ErrShopURLTaken
	}

	shop.ID = assignID(r.db.shops, &r.db.lastShopID)
	r.db.shops = append(r.db.shops, shopRow(shop))
	return &shop, nil
}

func (r *ShopRepo) Save(ctx context.Context, shop models.Shop) (*models.Shop, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.shops, shop.ID)
	if i == -1 {
		return nil, database.ErrShopNotFound
	}
	if r.urlTaken(shop.CustomURL, shop.ID) {
		return nil, database.ErrShopURLTaken
	}
	r.db.shops[i] = shopRow(shop)
	return &shop, nil
}

func (r *ShopRepo) Delete(ctx context.Context, id int64) error {
	if err := r.db.wait(ctx); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.shops, id)
	if i == -1 {
		return database.ErrShopNotFound
	}
	r.db.shops = append(r.db.shops[:i], r.db.shops[i+1:]...)
	return nil
}

// urlTaken must be called with the write lock held.
func (r *ShopRepo) urlTaken(customURL string, exceptID int64) bool {
	for _, row := range r.db.shops {
		if row.CustomURL == customURL && row.ID != exceptID {
			return true
		}
	}
	return false
}
