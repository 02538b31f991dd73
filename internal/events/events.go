// Package events publishes order lifecycle events.
package events

import (
	"context"
	"time"

	"github.com/safar/artisan-market/internal/models"
	"github.com/shopspring/decimal"
)

const (
	TypeOrderCreated       = "order.created"
	TypeOrderStatusChanged = "order.status_changed"
)

type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     int64           `json:"order_id"`
	Status      string          `json:"status"`
	ShopID      int64           `json:"shop_id"`
	CustomerID  int64           `json:"customer_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}

func NewOrderEvent(eventType string, order *models.Order, at time.Time) OrderEvent {
	return OrderEvent{
		Type:        eventType,
		OrderID:     order.ID,
		Status:      order.Status,
		ShopID:      order.ShopID,
		CustomerID:  order.CustomerID,
		TotalAmount: order.TotalAmount,
		OccurredAt:  at.UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// Nop drops every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, OrderEvent) error { return nil }
func (Nop) Close() error                             { return nil }
