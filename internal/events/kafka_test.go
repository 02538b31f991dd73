package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/safar/artisan-market/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaPublisherWritesKeyedJSON(t *testing.T) {
	w := &fakeWriter{}
	pub := NewKafkaPublisher(w, zerolog.Nop())

	at := time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
	order := &models.Order{
		ID:          42,
		Status:      models.OrderStatusNew,
		ShopID:      2,
		CustomerID:  1,
		TotalAmount: decimal.RequireFromString("38.50"),
	}

	require.NoError(t, pub.Publish(context.Background(), NewOrderEvent(TypeOrderCreated, order, at)))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "42", string(msg.Key))
	assert.Equal(t, "order.created", string(msg.Headers[0].Value))

	var body map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &body))
	assert.Equal(t, "order.created", body["type"])
	assert.EqualValues(t, 42, body["order_id"])
	assert.Equal(t, "new", body["status"])
	assert.EqualValues(t, 2, body["shop_id"])
	assert.EqualValues(t, 1, body["customer_id"])
	assert.Equal(t, "38.5", body["total_amount"])
	assert.Equal(t, "2024-09-01T10:00:00Z", body["occurred_at"])

	require.NoError(t, pub.Close())
	assert.True(t, w.closed)
}

func TestKafkaPublisherWrapsWriteErrors(t *testing.T) {
	boom := errors.New("broker down")
	pub := NewKafkaPublisher(&fakeWriter{err: boom}, zerolog.Nop())

	err := pub.Publish(context.Background(), OrderEvent{Type: TypeOrderStatusChanged, OrderID: 1})
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaWriterRequiresConfig(t *testing.T) {
	_, err := NewKafkaWriter(nil, "market.orders")
	assert.ErrorIs(t, err, ErrInvalidConfig)

	w, err := NewKafkaWriter([]string{"localhost:9092"}, "market.orders")
	require.NoError(t, err)
	assert.Equal(t, "market.orders", w.Topic)
}
