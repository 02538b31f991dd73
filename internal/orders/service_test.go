package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/events"
	"github.com/safar/artisan-market/internal/models"
	"github.com/safar/artisan-market/internal/store"
	"github.com/safar/artisan-market/internal/store/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type recordingPublisher struct {
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

type OrderServiceTestSuite struct {
	suite.Suite
	svc       *Service
	publisher *recordingPublisher
	now       time.Time
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (s *OrderServiceTestSuite) SetupTest() {
	s.svc, s.publisher = s.newService(Options{})
}

func (s *OrderServiceTestSuite) newService(opts Options) (*Service, *recordingPublisher) {
	seed := &store.Seed{Orders: []models.Order{
		{ID: 1, CustomerID: 1, ShopID: 1, Status: models.OrderStatusNew, CreatedAt: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CustomerID: 2, ShopID: 1, Status: models.OrderStatusDelivered, CreatedAt: time.Date(2024, 9, 2, 0, 0, 0, 0, time.UTC)},
	}}
	repos := memory.New(seed, memory.Options{}).Repositories()
	publisher := &recordingPublisher{}

	svc := NewService(repos.Orders, publisher, zerolog.Nop(), opts)
	s.now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return s.now }
	return svc, publisher
}

func (s *OrderServiceTestSuite) TestCreateSplitsFee() {
	order, err := s.svc.Create(context.Background(), CreateRequest{
		CustomerID:  1,
		ShopID:      3,
		ProductID:   6,
		Quantity:    1,
		TotalAmount: decimal.RequireFromString("9.99"),
	})
	s.Require().NoError(err)

	s.Equal(int64(3), order.ID)
	s.True(order.PlatformFee.Equal(decimal.RequireFromString("0.999")))
	s.True(order.SellerPayout.Equal(decimal.RequireFromString("8.991")))
	s.True(order.PlatformFee.Add(order.SellerPayout).Equal(order.TotalAmount))
	s.Equal(models.OrderStatusNew, order.Status)
	s.Nil(order.ShippedAt)
	s.Empty(order.TrackingNumber)
	s.Empty(order.ShippingLabelURL)
	s.NotNil(order.CustomizationFiles)
	s.Equal(s.now, order.CreatedAt)

	s.Require().Len(s.publisher.events, 1)
	s.Equal(events.TypeOrderCreated, s.publisher.events[0].Type)
	s.Equal(order.ID, s.publisher.events[0].OrderID)
}

func (s *OrderServiceTestSuite) TestSplitSumsToTotal() {
	for _, total := range []string{"0", "0.01", "56.00", "123.45", "1000000.07"} {
		fee, payout := Split(decimal.RequireFromString(total))
		s.True(fee.Add(payout).Equal(decimal.RequireFromString(total)), total)
		s.True(fee.Equal(decimal.RequireFromString(total).Mul(PlatformFeeRate)), total)
	}
}

func (s *OrderServiceTestSuite) TestShippedStampsShippedAt() {
	ctx := context.Background()

	order, err := s.svc.UpdateStatus(ctx, 1, models.OrderStatusShipped)
	s.Require().NoError(err)
	s.Require().NotNil(order.ShippedAt)
	s.Equal(s.now, *order.ShippedAt)

	shippedAt := *order.ShippedAt
	s.now = s.now.Add(time.Hour)

	// going back to new keeps the earlier shipped_at
	order, err = s.svc.UpdateStatus(ctx, 1, models.OrderStatusNew)
	s.Require().NoError(err)
	s.Require().NotNil(order.ShippedAt)
	s.Equal(shippedAt, *order.ShippedAt)

	s.Len(s.publisher.events, 2)
	s.Equal(events.TypeOrderStatusChanged, s.publisher.events[1].Type)
	s.Equal(models.OrderStatusNew, s.publisher.events[1].Status)
}

func (s *OrderServiceTestSuite) TestUpdateStatusErrors() {
	ctx := context.Background()

	_, err := s.svc.UpdateStatus(ctx, 99, models.OrderStatusShipped)
	s.ErrorIs(err, database.ErrOrderNotFound)

	_, err = s.svc.UpdateStatus(ctx, 1, "lost")
	s.ErrorIs(err, ErrUnknownStatus)
}

func (s *OrderServiceTestSuite) TestPermissiveModeAllowsAnyTransition() {
	order, err := s.svc.UpdateStatus(context.Background(), 2, models.OrderStatusNew)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusNew, order.Status)
}

func (s *OrderServiceTestSuite) TestStrictModeRejectsBackwardTransition() {
	svc, publisher := s.newService(Options{StrictTransitions: true})
	ctx := context.Background()

	_, err := svc.UpdateStatus(ctx, 2, models.OrderStatusNew)
	s.ErrorIs(err, ErrInvalidTransition)
	s.Empty(publisher.events)

	order, err := svc.UpdateStatus(ctx, 2, models.OrderStatusDelivered)
	s.Require().NoError(err)
	s.Equal(models.OrderStatusDelivered, order.Status)

	_, err = svc.UpdateStatus(ctx, 1, models.OrderStatusShipped)
	s.Require().NoError(err)
	_, err = svc.UpdateStatus(ctx, 1, models.OrderStatusDelivered)
	s.Require().NoError(err)
}

func (s *OrderServiceTestSuite) TestPublishFailureDoesNotFailCreate() {
	s.publisher.err = errors.New("broker down")

	_, err := s.svc.Create(context.Background(), CreateRequest{CustomerID: 1, TotalAmount: decimal.NewFromInt(10)})
	s.NoError(err)
}

func (s *OrderServiceTestSuite) TestUpdatePatchesTrackingFields() {
	tracking := "1Z999"
	order, err := s.svc.Update(context.Background(), 1, Patch{TrackingNumber: &tracking})
	s.Require().NoError(err)
	s.Equal("1Z999", order.TrackingNumber)
	s.Empty(order.ShippingLabelURL)
	s.Equal(models.OrderStatusNew, order.Status)
}

func (s *OrderServiceTestSuite) TestQueries() {
	ctx := context.Background()

	byCustomer, err := s.svc.GetByCustomerID(ctx, 2)
	s.Require().NoError(err)
	s.Len(byCustomer, 1)

	byShop, err := s.svc.GetByShopID(ctx, 1)
	s.Require().NoError(err)
	s.Len(byShop, 2)

	_, err = s.svc.GetByID(ctx, 99)
	s.True(database.IsNotFound(err))
}

func (s *OrderServiceTestSuite) TestListPageNewestFirst() {
	ctx := context.Background()

	page, err := s.svc.ListPage(ctx, ListFilter{}, "", 1)
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(int64(2), page.Items[0].ID)
	s.True(page.HasMore)

	next, err := s.svc.ListPage(ctx, ListFilter{}, page.NextCursor, 1)
	s.Require().NoError(err)
	s.Require().Len(next.Items, 1)
	s.Equal(int64(1), next.Items[0].ID)
	s.False(next.HasMore)

	_, err = s.svc.ListPage(ctx, ListFilter{}, "%%%", 1)
	s.ErrorIs(err, ErrInvalidCursor)
}

type stalledPublisher struct {
	hadDeadline bool
}

func (p *stalledPublisher) Publish(ctx context.Context, _ events.OrderEvent) error {
	_, p.hadDeadline = ctx.Deadline()
	<-ctx.Done()
	return ctx.Err()
}

func (p *stalledPublisher) Close() error { return nil }

func (s *OrderServiceTestSuite) TestSlowBrokerDoesNotStallOrders() {
	repos := memory.New(nil, memory.Options{}).Repositories()
	publisher := &stalledPublisher{}
	svc := NewService(repos.Orders, publisher, zerolog.Nop(), Options{PublishTimeout: 20 * time.Millisecond})

	start := time.Now()
	order, err := svc.Create(context.Background(), CreateRequest{
		CustomerID:  1,
		ShopID:      1,
		ProductID:   1,
		Quantity:    1,
		TotalAmount: decimal.NewFromInt(10),
	})
	s.Require().NoError(err)
	s.Equal(int64(1), order.ID)
	s.True(publisher.hadDeadline)
	s.Less(time.Since(start), time.Second)

	_, err = svc.UpdateStatus(context.Background(), order.ID, models.OrderStatusShipped)
	s.Require().NoError(err)
	s.Less(time.Since(start), time.Second)
}
