package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageWriter is the subset of *kafkago.Writer the producer uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer publishes CloudEvents keyed by aggregate id.
type Producer struct {
	writer MessageWriter
	logger *zap.Logger
}

// NewProducer creates a producer for brokers.
func NewProducer(brokers []string, logger *zap.Logger) *Producer {
	return NewProducerWithWriter(&kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
	}, logger)
}

// NewProducerWithWriter wires an explicit writer.
func NewProducerWithWriter(w MessageWriter, logger *zap.Logger) *Producer {
	return &Producer{writer: w, logger: logger}
}

// PublishEvent writes event to topic, keyed by key so that events for one
// aggregate stay ordered within a partition.
func (p *Producer) PublishEvent(ctx context.Context, topic, key string, event CloudEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal cloud event: %w", err)
	}
	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kafkago.Header{
			{Key: "ce_type", Value: []byte(event.Type)},
			{Key: "ce_source", Value: []byte(event.Source)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write to %s: %w", topic, err)
	}
	p.logger.Debug("event published",
		zap.String("topic", topic),
		zap.String("event_type", event.Type),
		zap.String("event_id", event.ID),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
