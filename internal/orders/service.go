// Package orders creates marketplace orders and moves them through their lifecycle.
package orders

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/events"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the marketplace's share of every order total.
var PlatformFeeRate = decimal.RequireFromString("0.10")

type CreateRequest struct {
	CustomerID          int64                      `json:"customer_id"`
	CustomerName        string                     `json:"customer_name"`
	ShopID              int64                      `json:"shop_id"`
	ProductID           int64                      `json:"product_id"`
	ProductTitle        string                     `json:"product_title"`
	ProductImage        string                     `json:"product_image"`
	Quantity            int                        `json:"quantity"`
	TotalAmount         decimal.Decimal            `json:"total_amount"`
	ShippingAddress     models.ShippingAddress     `json:"shipping_address"`
	CustomizationFiles  []models.CustomizationFile `json:"customization_files"`
	SpecialInstructions string                     `json:"special_instructions"`
	PaymentReference    string                     `json:"payment_reference"`
}

// Patch updates the fulfilment fields of an order. Nil fields are left untouched.
type Patch struct {
	TrackingNumber      *string `json:"tracking_number,omitempty"`
	ShippingLabelURL    *string `json:"shipping_label_url,omitempty"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

// DefaultPublishTimeout bounds one event publish when Options leaves it zero.
const DefaultPublishTimeout = 2 * time.Second

type Options struct {
	StrictTransitions bool
	PublishTimeout    time.Duration
}

type Service struct {
	orders    store.OrderRepository
	publisher events.Publisher
	logger    zerolog.Logger
	strict    bool
	timeout   time.Duration
	now       func() time.Time

	// serializes read-modify-write updates
	mu sync.Mutex
}

func NewService(orders store.OrderRepository, publisher events.Publisher, logger zerolog.Logger, opts Options) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	timeout := opts.PublishTimeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	return &Service{
		orders:    orders,
		publisher: publisher,
		logger:    logger,
		strict:    opts.StrictTransitions,
		timeout:   timeout,
		now:       time.Now,
	}
}

// Split returns the platform fee and seller payout for total. They always sum to total.
func Split(total decimal.Decimal) (fee, payout decimal.Decimal) {
	fee = total.Mul(PlatformFeeRate)
	return fee, total.Sub(fee)
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*models.Order, error) {
	fee, payout := Split(req.TotalAmount)

	files := req.CustomizationFiles
	if files == nil {
		files = []models.CustomizationFile{}
	}

	order, err := s.orders.Create(ctx, models.Order{
		CustomerID:          req.CustomerID,
		CustomerName:        req.CustomerName,
		ShopID:              req.ShopID,
		ProductID:           req.ProductID,
		ProductTitle:        req.ProductTitle,
		ProductImage:        req.ProductImage,
		Quantity:            req.Quantity,
		TotalAmount:         req.TotalAmount,
		PlatformFee:         fee,
		SellerPayout:        payout,
		ShippingAddress:     req.ShippingAddress,
		CustomizationFiles:  files,
		SpecialInstructions: req.SpecialInstructions,
		PaymentReference:    req.PaymentReference,
		Status:              models.OrderStatusNew,
		CreatedAt:           s.now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.publish(ctx, events.TypeOrderCreated, order)
	return order, nil
}

// UpdateStatus sets the order status. Moving to shipped stamps shipped_at; no other
// status touches it. Only new, shipped, delivered and cancelled are accepted; any other
// string fails with ErrUnknownStatus, even outside strict mode. Without strict mode any
// known status may follow any other. In strict mode only transitions in the lifecycle
// table are allowed.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	if !KnownStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, status)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	if s.strict && !CanTransition(order.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, order.Status, status)
	}

	order.Status = status
	if status == models.OrderStatusShipped {
		shippedAt := s.now()
		order.ShippedAt = &shippedAt
	}

	saved, err := s.orders.Save(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("save order %d: %w", id, err)
	}

	s.publish(ctx, events.TypeOrderStatusChanged, saved)
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int64, patch Patch) (*models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}

	if patch.TrackingNumber != nil {
		order.TrackingNumber = *patch.TrackingNumber
	}
	if patch.ShippingLabelURL != nil {
		order.ShippingLabelURL = *patch.ShippingLabelURL
	}
	if patch.SpecialInstructions != nil {
		order.SpecialInstructions = *patch.SpecialInstructions
	}

	saved, err := s.orders.Save(ctx, *order)
	if err != nil {
		return nil, fmt.Errorf("save order %d: %w", id, err)
	}
	return saved, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

func (s *Service) GetByCustomerID(ctx context.Context, customerID int64) ([]models.Order, error) {
	orders, err := s.orders.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list orders for customer %d: %w", customerID, err)
	}
	return orders, nil
}

func (s *Service) GetByShopID(ctx context.Context, shopID int64) ([]models.Order, error) {
	orders, err := s.orders.ListByShop(ctx, shopID)
	if err != nil {
		return nil, fmt.Errorf("list orders for shop %d: %w", shopID, err)
	}
	return orders, nil
}

func (s *Service) GetAll(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ListFilter selects the orders of one customer or one shop. Customer wins when both are set.
type ListFilter struct {
	CustomerID *int64
	ShopID     *int64
}

// ListPage returns orders newest first, limit at a time, continuing after cursor.
func (s *Service) ListPage(ctx context.Context, f ListFilter, cursor string, limit int) (*store.CursorPage[models.Order], error) {
	var (
		orders []models.Order
		err    error
	)
	switch {
	case f.CustomerID != nil:
		orders, err = s.GetByCustomerID(ctx, *f.CustomerID)
	case f.ShopID != nil:
		orders, err = s.GetByShopID(ctx, *f.ShopID)
	default:
		orders, err = s.GetAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}

	store.SortOrdersNewestFirst(orders)
	page, err := store.PageOrders(orders, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCursor, err)
	}
	return page, nil
}

// publish gives the broker at most s.timeout. The order is already stored, so a
// slow or failing broker only costs a warning.
func (s *Service) publish(ctx context.Context, eventType string, order *models.Order) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	event := events.NewOrderEvent(eventType, order, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("type", eventType).
			Int64("order_id", order.ID).
			Msg("publish order event failed")
	}
}
