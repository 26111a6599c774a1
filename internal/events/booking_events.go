// Package events publishes and consumes the service's Kafka CloudEvents.
package events

import (
	"time"

	"github.com/monastery360/service-travel/internal/domain/location"
)

const (
	// EventSource is the CloudEvents source of everything this service emits.
	EventSource = "service-travel"

	// BookingConfirmed is emitted after a record joins a session's history.
	BookingConfirmed = "booking.confirmed"

	// FestivalSheetUpdated asks the service to re-mirror the festival sheet.
	FestivalSheetUpdated = "festival.sheet.updated"

	// TopicFestivalEvents carries festival catalog notifications.
	TopicFestivalEvents = "travel.festivals"

	// Currency of every fare.
	Currency = "INR"
)

// BookingConfirmedEvent is the payload of a BookingConfirmed event.
type BookingConfirmedEvent struct {
	BookingID     string            `json:"booking_id"`
	SessionID     string            `json:"session_id"`
	Source        location.Location `json:"source"`
	Destination   location.Location `json:"destination"`
	TransportType string            `json:"transport_type"`
	TransportName string            `json:"transport_name"`
	Fare          int64             `json:"fare"`
	Currency      string            `json:"currency"`
	BookedAt      time.Time         `json:"booked_at"`
	OccurredAt    time.Time         `json:"occurred_at"`
}

// FestivalSheetUpdatedEvent is the payload of a FestivalSheetUpdated event.
type FestivalSheetUpdatedEvent struct {
	Path       string    `json:"path,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
