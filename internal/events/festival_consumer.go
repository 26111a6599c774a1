package events

import (
	"context"
	"errors"

	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/monastery360/service-travel/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// FestivalSyncer re-mirrors the festival sheet.
type FestivalSyncer interface {
	Sync(ctx context.Context) (int, error)
}

// FestivalEventConsumer listens to festival events and refreshes the mirror.
type FestivalEventConsumer struct {
	consumer *kafka.Consumer
	syncer   FestivalSyncer
	logger   *zap.Logger
}

// NewFestivalEventConsumer creates a new FestivalEventConsumer.
func NewFestivalEventConsumer(consumer *kafka.Consumer, syncer FestivalSyncer, logger *zap.Logger) *FestivalEventConsumer {
	return &FestivalEventConsumer{
		consumer: consumer,
		syncer:   syncer,
		logger:   logger,
	}
}

// Start begins consuming festival events. This blocks until the context is cancelled.
func (c *FestivalEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.HandleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *FestivalEventConsumer) Close() error {
	return c.consumer.Close()
}

// HandleMessage processes one festival event.
func (c *FestivalEventConsumer) HandleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from festival topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		return nil // malformed messages are not retried
	}

	switch cloudEvent.Type {
	case FestivalSheetUpdated:
		return c.handleSheetUpdated(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled festival event type",
			zap.String("type", cloudEvent.Type),
		)
		return nil
	}
}

func (c *FestivalEventConsumer) handleSheetUpdated(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var evt FestivalSheetUpdatedEvent
	if err := cloudEvent.ParseData(&evt); err != nil {
		c.logger.Error("failed to parse FestivalSheetUpdatedEvent data", zap.Error(err))
		return nil
	}

	n, err := c.syncer.Sync(ctx)
	if err != nil {
		if errors.Is(err, festival.ErrSourceNotFound) {
			c.logger.Warn("festival sheet missing, mirror left unchanged", zap.String("path", evt.Path))
			return nil
		}
		c.logger.Error("failed to sync festival mirror", zap.Error(err))
		return err
	}

	c.logger.Info("festival mirror refreshed",
		zap.String("event_id", cloudEvent.ID),
		zap.Int("count", n),
	)
	return nil
}
