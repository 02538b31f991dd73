package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var ErrInvalidConfig = errors.New("kafka brokers and topic are required")

// Writer is the part of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer Writer
	logger zerolog.Logger
}

func NewKafkaWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 || topic == "" {
		return nil, ErrInvalidConfig
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           50 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}, nil
}

func NewKafkaPublisher(w Writer, logger zerolog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger}
}

// Publish writes event keyed by order id so one order's events stay on one partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	p.logger.Debug().
		Str("type", event.Type).
		Int64("order_id", event.OrderID).
		Msg("order event published")
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
