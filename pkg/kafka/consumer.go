package kafka

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer uses.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// MessageHandler processes one message. A returned error leaves the
// message uncommitted so it is redelivered after a rebalance or restart.
type MessageHandler func(ctx context.Context, msg kafkago.Message) error

// Consumer reads one topic as part of a consumer group.
type Consumer struct {
	reader MessageReader
	logger *zap.Logger
}

// NewConsumer creates a group consumer for topic.
func NewConsumer(brokers []string, groupID, topic string, logger *zap.Logger) *Consumer {
	return NewConsumerWithReader(kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
	}), logger)
}

// NewConsumerWithReader wires an explicit reader.
func NewConsumerWithReader(r MessageReader, logger *zap.Logger) *Consumer {
	return &Consumer{reader: r, logger: logger}
}

// Consume fetches messages until ctx is cancelled, committing each one the handler accepts.
func (c *Consumer) Consume(ctx context.Context, handle MessageHandler) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("fetch message: %w", err)
		}

		if err := handle(ctx, msg); err != nil {
			c.logger.Error("message handler failed",
				zap.String("topic", msg.Topic),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("commit message: %w", err)
		}
	}
}

// Close closes the underlying reader.
func (c *Consumer) Close() error {
	return c.reader.Close()
}
