package orders

import (
	"errors"

	"github.com/safar/artisan-market/internal/models"
)

var (
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrUnknownStatus     = errors.New("unknown order status")
	ErrInvalidCursor     = errors.New("invalid cursor")
)

var transitions = map[string][]string{
	models.OrderStatusNew:       {models.OrderStatusShipped, models.OrderStatusCancelled},
	models.OrderStatusShipped:   {models.OrderStatusDelivered, models.OrderStatusCancelled},
	models.OrderStatusDelivered: nil,
	models.OrderStatusCancelled: nil,
}

func KnownStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// CanTransition reports whether strict mode allows moving from one status to another.
// Re-applying the current status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
