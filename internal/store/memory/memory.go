// Package memory keeps the marketplace collections in process memory, mutating them in place.
// Every call waits for the configured latency first, simulating a remote backend.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/safar/artisan-market/internal/store"
)

type Options struct {
	Latency time.Duration
}

// DB is the shared state behind the memory repositories.
type DB struct {
	mu      sync.RWMutex
	latency time.Duration

	products []productRow
	orders   []orderRow
	reviews  []reviewRow
	shops    []shopRow

	// highest id ever handed out per collection, so deleting the newest row
	// never frees its id for reuse.
	lastProductID int64
	lastOrderID   int64
	lastReviewID  int64
	lastShopID    int64
}

func New(seed *store.Seed, opts Options) *DB {
	if seed == nil {
		seed = &store.Seed{}
	}
	db := &DB{latency: opts.Latency}
	for _, p := range seed.Products {
		db.products = append(db.products, productRow(cloneProduct(p)))
	}
	for _, o := range seed.Orders {
		db.orders = append(db.orders, orderRow(cloneOrder(o)))
	}
	for _, r := range seed.Reviews {
		db.reviews = append(db.reviews, reviewRow(cloneReview(r)))
	}
	for _, s := range seed.Shops {
		db.shops = append(db.shops, shopRow(s))
	}

	db.lastProductID = nextID(db.products) - 1
	db.lastOrderID = nextID(db.orders) - 1
	db.lastReviewID = nextID(db.reviews) - 1
	db.lastShopID = nextID(db.shops) - 1
	return db
}

// Repositories exposes db through the store interfaces.
func (db *DB) Repositories() store.Repositories {
	return store.Repositories{
		Products: &ProductRepo{db: db},
		Orders:   &OrderRepo{db: db},
		Reviews:  &ReviewRepo{db: db},
		Shops:    &ShopRepo{db: db},
	}
}

func (db *DB) wait(ctx context.Context) error {
	if db.latency <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(db.latency)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

type identified interface {
	id() int64
}

// nextID is max(existing)+1, or 1 for an empty collection.
func nextID[T identified](rows []T) int64 {
	var maxID int64
	for _, row := range rows {
		if row.id() > maxID {
			maxID = row.id()
		}
	}
	return maxID + 1
}

// assignID returns max(existing)+1, bumped past last when a newer row was deleted.
func assignID[T identified](rows []T, last *int64) int64 {
	id := nextID(rows)
	if id <= *last {
		id = *last + 1
	}
	*last = id
	return id
}

func indexOf[T identified](rows []T, id int64) int {
	for i, row := range rows {
		if row.id() == id {
			return i
		}
	}
	return -1
}
