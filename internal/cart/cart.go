// Package cart keeps a shopper's cart and persists it through a kv.Store after every change.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/kv"
	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
)

// StorageKey is where the serialized cart lives.
const StorageKey = "artisan-cart"

const (
	NoticeAdded   = "Added to cart!"
	NoticeUpdated = "Updated cart quantity"
	NoticeRemoved = "Removed from cart"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

// Notifier receives user-facing notices about cart changes.
type Notifier interface {
	Notify(level Level, message string)
}

type NotifierFunc func(level Level, message string)

func (f NotifierFunc) Notify(level Level, message string) { f(level, message) }

type Cart struct {
	mu     sync.Mutex
	store  kv.Store
	notify Notifier
	items  []models.CartItem
}

type Option func(*Cart)

func WithNotifier(n Notifier) Option {
	return func(c *Cart) { c.notify = n }
}

// Load restores the cart saved in store. A missing key gives an empty cart, and so does
// a payload that fails to parse, which is logged. Other storage errors are returned.
func Load(ctx context.Context, store kv.Store, logger zerolog.Logger, opts ...Option) (*Cart, error) {
	c := &Cart{store: store, items: []models.CartItem{}}
	for _, opt := range opts {
		opt(c)
	}

	raw, err := store.Get(ctx, StorageKey)
	if err != nil {
		if errors.Is(err, kv.ErrKeyNotFound) {
			return c, nil
		}
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn().Err(err).Str("key", StorageKey).Msg("discarding unreadable cart")
		return c, nil
	}
	if items != nil {
		c.items = items
	}
	return c, nil
}

// AddToCart merges quantity into the product's line, or appends a new line.
// A quantity below 1 counts as 1.
func (c *Cart) AddToCart(ctx context.Context, product models.Product, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.copyItems()
	notice := NoticeAdded
	if i := indexOf(items, product.ID); i >= 0 {
		items[i].Quantity += quantity
		notice = NoticeUpdated
	} else {
		items = append(items, models.CartItem{Product: product, Quantity: quantity})
	}

	if err := c.commit(ctx, items); err != nil {
		return err
	}
	c.emit(LevelSuccess, notice)
	return nil
}

// UpdateQuantity sets the quantity of the product's line as given. Unknown products are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := c.copyItems()
	if i := indexOf(items, productID); i >= 0 {
		items[i].Quantity = quantity
	}
	return c.commit(ctx, items)
}

func (c *Cart) RemoveFromCart(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]models.CartItem, 0, len(c.items))
	for _, item := range c.items {
		if item.ID != productID {
			items = append(items, item)
		}
	}

	if err := c.commit(ctx, items); err != nil {
		return err
	}
	c.emit(LevelInfo, NoticeRemoved)
	return nil
}

func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.commit(ctx, []models.CartItem{})
}

// Total is the sum of price × quantity over all lines.
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (c *Cart) Items() []models.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.copyItems()
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items)
}

// Quantity is the number of units across all lines.
func (c *Cart) Quantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

func (c *Cart) HasCustomizable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.ProductType == models.ProductTypeCustomizable {
			return true
		}
	}
	return false
}

// commit persists items and only then makes them the cart's state.
func (c *Cart) commit(ctx context.Context, items []models.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := c.store.Set(ctx, StorageKey, string(data)); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	c.items = items
	return nil
}

func (c *Cart) copyItems() []models.CartItem {
	items := make([]models.CartItem, len(c.items))
	copy(items, c.items)
	return items
}

func (c *Cart) emit(level Level, message string) {
	if c.notify != nil {
		c.notify.Notify(level, message)
	}
}

func indexOf(items []models.CartItem, productID int64) int {
	for i, item := range items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}
