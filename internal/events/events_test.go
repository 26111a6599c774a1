package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	bookingDomain "github.com/monastery360/service-travel/internal/domain/booking"
	"github.com/monastery360/service-travel/internal/domain/festival"
	"github.com/monastery360/service-travel/internal/domain/location"
	"github.com/monastery360/service-travel/internal/events"
	"github.com/monastery360/service-travel/pkg/domain"
	"github.com/monastery360/service-travel/pkg/kafka"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	topic string
	key   string
	event kafka.CloudEvent
}

type fakePublisher struct {
	err  error
	sent []published
}

func (f *fakePublisher) PublishEvent(_ context.Context, topic, key string, event kafka.CloudEvent) error {
	f.sent = append(f.sent, published{topic: topic, key: key, event: event})
	return f.err
}

func newRecord(t *testing.T) bookingDomain.Record {
	t.Helper()
	rec, err := bookingDomain.NewRecord(
		"booking-1740819600000",
		location.Location{Name: "Gangtok", Lat: 27.3389, Lng: 88.6065},
		location.Location{Name: "Pelling", Lat: 27.2152, Lng: 88.2426},
		bookingDomain.TransportJeep, "Shared Jeep", 450,
		time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return rec
}

func TestBookingPublisher_BookingConfirmed(t *testing.T) {
	pub := &fakePublisher{}
	sessionID := uuid.New()
	p := events.NewBookingPublisher(pub, "travel.bookings", zap.NewNop())

	p.BookingConfirmed(context.Background(), sessionID, newRecord(t))

	require.Len(t, pub.sent, 1)
	sent := pub.sent[0]
	assert.Equal(t, "travel.bookings", sent.topic)
	assert.Equal(t, "booking-1740819600000", sent.key)
	assert.Equal(t, events.BookingConfirmed, sent.event.Type)
	assert.Equal(t, events.EventSource, sent.event.Source)

	var evt events.BookingConfirmedEvent
	require.NoError(t, sent.event.ParseData(&evt))
	assert.Equal(t, sessionID.String(), evt.SessionID)
	assert.Equal(t, "jeep", evt.TransportType)
	assert.Equal(t, int64(450), evt.Fare)
	assert.Equal(t, events.Currency, evt.Currency)
	assert.Equal(t, "Pelling", evt.Destination.Name)
}

func TestBookingPublisher_failureIsSwallowed(t *testing.T) {
	pub := &fakePublisher{err: errors.New("broker unavailable")}
	p := events.NewBookingPublisher(pub, "travel.bookings", zap.NewNop())

	assert.NotPanics(t, func() {
		p.BookingConfirmed(context.Background(), uuid.New(), newRecord(t))
	})
	assert.Len(t, pub.sent, 1)
}

func TestBookingPublisher_nilProducer(t *testing.T) {
	p := events.NewBookingPublisher(nil, "travel.bookings", zap.NewNop())

	assert.NotPanics(t, func() {
		p.BookingConfirmed(context.Background(), uuid.New(), newRecord(t))
	})
}

type fakeSyncer struct {
	n     int
	err   error
	calls int
}

func (f *fakeSyncer) Sync(context.Context) (int, error) {
	f.calls++
	return f.n, f.err
}

func festivalMessage(t *testing.T, eventType string) kafkago.Message {
	t.Helper()
	ce, err := kafka.NewCloudEvent("sheet-watcher", eventType, events.FestivalSheetUpdatedEvent{
		Path:       "data/sikkim_festivals_full.xlsx",
		OccurredAt: time.Now().UTC(),
	})
	require.NoError(t, err)
	raw, err := json.Marshal(ce)
	require.NoError(t, err)
	return kafkago.Message{Topic: events.TopicFestivalEvents, Value: raw}
}

func TestFestivalEventConsumer_HandleMessage(t *testing.T) {
	t.Run("sheet updated triggers sync", func(t *testing.T) {
		syncer := &fakeSyncer{n: 12}
		c := events.NewFestivalEventConsumer(nil, syncer, zap.NewNop())

		err := c.HandleMessage(context.Background(), festivalMessage(t, events.FestivalSheetUpdated))

		require.NoError(t, err)
		assert.Equal(t, 1, syncer.calls)
	})

	t.Run("other types ignored", func(t *testing.T) {
		syncer := &fakeSyncer{}
		c := events.NewFestivalEventConsumer(nil, syncer, zap.NewNop())

		err := c.HandleMessage(context.Background(), festivalMessage(t, "festival.deleted"))

		require.NoError(t, err)
		assert.Zero(t, syncer.calls)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		syncer := &fakeSyncer{}
		c := events.NewFestivalEventConsumer(nil, syncer, zap.NewNop())

		err := c.HandleMessage(context.Background(), kafkago.Message{Value: []byte("{not json")})

		require.NoError(t, err)
		assert.Zero(t, syncer.calls)
	})

	t.Run("missing sheet is not retried", func(t *testing.T) {
		syncer := &fakeSyncer{err: &domain.AppError{Code: domain.CodeNotFound, Message: "XLSX file not found", Err: festival.ErrSourceNotFound}}
		c := events.NewFestivalEventConsumer(nil, syncer, zap.NewNop())

		err := c.HandleMessage(context.Background(), festivalMessage(t, events.FestivalSheetUpdated))

		assert.NoError(t, err)
	})

	t.Run("sync failure is retried", func(t *testing.T) {
		syncer := &fakeSyncer{err: errors.New("connection refused")}
		c := events.NewFestivalEventConsumer(nil, syncer, zap.NewNop())

		err := c.HandleMessage(context.Background(), festivalMessage(t, events.FestivalSheetUpdated))

		assert.Error(t, err)
	})
}
