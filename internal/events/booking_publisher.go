package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/pkg/kafka"
	"go.uber.org/zap"
)

// EventPublisher is satisfied by *kafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// BookingPublisher emits booking lifecycle events. Failures are logged, never returned.
type BookingPublisher struct {
	producer EventPublisher
	topic    string
	logger   *zap.Logger
}

// NewBookingPublisher creates a BookingPublisher. A nil producer makes every publish a no-op.
func NewBookingPublisher(producer EventPublisher, topic string, logger *zap.Logger) *BookingPublisher {
	return &BookingPublisher{producer: producer, topic: topic, logger: logger}
}

// BookingConfirmed publishes rec keyed by its booking id.
func (p *BookingPublisher) BookingConfirmed(ctx context.Context, sessionID uuid.UUID, rec bookingDomain.Record) {
	if p == nil || p.producer == nil {
		return
	}

	evt := BookingConfirmedEvent{
		BookingID:     rec.ID(),
		SessionID:     sessionID.String(),
		Source:        rec.Source(),
		Destination:   rec.Destination(),
		TransportType: string(rec.TransportType()),
		TransportName: rec.TransportName(),
		Fare:          rec.Fare(),
		Currency:      Currency,
		BookedAt:      rec.BookedAt(),
		OccurredAt:    time.Now().UTC(),
	}

	cloudEvent, err := kafka.NewCloudEvent(EventSource, BookingConfirmed, evt)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", BookingConfirmed),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, p.topic, rec.ID(), cloudEvent); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", p.topic),
			zap.String("event_type", BookingConfirmed),
			zap.String("booking_id", rec.ID()),
			zap.Error(err),
		)
	}
}
