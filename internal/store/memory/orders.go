package memory

import (
	"context"

	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/models"
)

type OrderRepo struct {
	db *DB
}

func (r *OrderRepo) List(ctx context.Context) ([]models.Order, error) {
	return r.filter(ctx, func(models.Order) bool { return true })
}

func (r *OrderRepo) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	return r.filter(ctx, func(o models.Order) bool { return o.CustomerID == customerID })
}

func (r *OrderRepo) ListByShop(ctx context.Context, shopID int64) ([]models.Order, error) {
	return r.filter(ctx, func(o models.Order) bool { return o.ShopID == shopID })
}

func (r *OrderRepo) filter(ctx context.Context, keep func(models.Order) bool) ([]models.Order, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	orders := []models.Order{}
	for _, row := range r.db.orders {
		if order := models.Order(row); keep(order) {
			orders = append(orders, cloneOrder(order))
		}
	}
	return orders, nil
}

func (r *OrderRepo) Get(ctx context.Context, id int64) (*models.Order, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	i := indexOf(r.db.orders, id)
	if i == -1 {
		return nil, database.ErrOrderNotFound
	}
	order := cloneOrder(models.Order(r.db.orders[i]))
	return &order, nil
}

func (r *OrderRepo) Create(ctx context.Context, order models.Order) (*models.Order, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	order = cloneOrder(order)
	order.ID = assignID(r.db.orders, &r.db.lastOrderID)
	r.db.orders = append(r.db.orders, orderRow(order))

	created := cloneOrder(order)
	return &created, nil
}

func (r *OrderRepo) Save(ctx context.Context, order models.Order) (*models.Order, error) {
	if err := r.db.wait(ctx); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	i := indexOf(r.db.orders, order.ID)
	if i == -1 {
		return nil, database.ErrOrderNotFound
	}
	r.db.orders[i] = orderRow(cloneOrder(order))

	saved := cloneOrder(order)
	return &saved, nil
}
